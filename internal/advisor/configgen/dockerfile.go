package configgen

import "github.com/scale-advisor/scale-advisor-backend/internal/projects"

// Dockerfile returns a stack-appropriate Dockerfile.
func Dockerfile(stack projects.TechStack) string {
	switch stack {
	case projects.StackMERN, projects.StackMEAN, projects.StackNextJS:
		return dockerfileNode
	case projects.StackDjango, projects.StackFlask:
		return dockerfilePython
	case projects.StackRails:
		return dockerfileRuby
	case projects.StackLaravel:
		return dockerfilePHP
	case projects.StackGolang:
		return dockerfileGo
	}
	return dockerfileNode
}

const dockerfileNode = `# Build stage
FROM node:20-alpine AS build
WORKDIR /app
COPY package*.json ./
RUN npm ci
COPY . .
RUN npm run build

# Runtime stage
FROM node:20-alpine
WORKDIR /app
ENV NODE_ENV=production
COPY --from=build /app/package*.json ./
RUN npm ci --omit=dev
COPY --from=build /app/dist ./dist
EXPOSE 3000
USER node
CMD ["node", "dist/index.js"]
`

const dockerfilePython = `FROM python:3.12-slim
WORKDIR /app
ENV PYTHONDONTWRITEBYTECODE=1 \
    PYTHONUNBUFFERED=1
COPY requirements.txt .
RUN pip install --no-cache-dir -r requirements.txt gunicorn
COPY . .
EXPOSE 8000
CMD ["gunicorn", "--bind", "0.0.0.0:8000", "--workers", "4", "app.wsgi:application"]
`

const dockerfileRuby = `FROM ruby:3.3-slim
WORKDIR /app
RUN apt-get update -qq && apt-get install -y build-essential libpq-dev && rm -rf /var/lib/apt/lists/*
COPY Gemfile Gemfile.lock ./
RUN bundle install --jobs 4 --without development test
COPY . .
RUN bundle exec rails assets:precompile
EXPOSE 3000
CMD ["bundle", "exec", "puma", "-C", "config/puma.rb"]
`

const dockerfilePHP = `FROM php:8.3-fpm-alpine
WORKDIR /var/www
RUN docker-php-ext-install pdo pdo_pgsql opcache
COPY --from=composer:2 /usr/bin/composer /usr/bin/composer
COPY composer.json composer.lock ./
RUN composer install --no-dev --no-scripts --optimize-autoloader
COPY . .
RUN php artisan config:cache && php artisan route:cache
EXPOSE 8080
CMD ["php", "artisan", "serve", "--host=0.0.0.0", "--port=8080"]
`

const dockerfileGo = `# Build stage
FROM golang:1.25-alpine AS build
WORKDIR /src
COPY go.mod go.sum ./
RUN go mod download
COPY . .
RUN CGO_ENABLED=0 go build -o /bin/app ./cmd/api

# Runtime stage
FROM gcr.io/distroless/static-debian12
COPY --from=build /bin/app /app
EXPOSE 8080
ENTRYPOINT ["/app"]
`
