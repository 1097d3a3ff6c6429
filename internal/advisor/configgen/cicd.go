package configgen

import (
	"fmt"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// CIPipeline returns a GitHub Actions workflow for the stack.
func CIPipeline(stack projects.TechStack) string {
	var setup, test string
	switch stack {
	case projects.StackMERN, projects.StackMEAN, projects.StackNextJS:
		setup = `      - uses: actions/setup-node@v4
        with:
          node-version: 20
          cache: npm
      - run: npm ci`
		test = "npm test"
	case projects.StackDjango, projects.StackFlask:
		setup = `      - uses: actions/setup-python@v5
        with:
          python-version: "3.12"
          cache: pip
      - run: pip install -r requirements.txt`
		test = "pytest"
	case projects.StackRails:
		setup = `      - uses: ruby/setup-ruby@v1
        with:
          ruby-version: "3.3"
          bundler-cache: true`
		test = "bundle exec rspec"
	case projects.StackLaravel:
		setup = `      - uses: shivammathur/setup-php@v2
        with:
          php-version: "8.3"
      - run: composer install --prefer-dist --no-progress`
		test = "php artisan test"
	case projects.StackGolang:
		setup = `      - uses: actions/setup-go@v5
        with:
          go-version: "1.25"`
		test = "go test ./..."
	default:
		setup = `      - uses: actions/setup-node@v4
        with:
          node-version: 20
      - run: npm ci`
		test = "npm test"
	}

	return fmt.Sprintf(`name: deploy

on:
  push:
    branches: [main]
  pull_request:

jobs:
  test:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
%s
      - run: %s

  build:
    needs: test
    if: github.ref == 'refs/heads/main'
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - uses: docker/setup-buildx-action@v3
      - uses: docker/build-push-action@v6
        with:
          context: .
          push: true
          tags: ${{ secrets.REGISTRY }}/app:${{ github.sha }}
`, setup, test)
}
