package configgen

import (
	"fmt"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// DockerCompose returns a local development stack: the app, its conventional
// database, and Redis.
func DockerCompose(app string, stack projects.TechStack) string {
	port := appPort(stack)

	db := `  db:
    image: postgres:16-alpine
    environment:
      POSTGRES_DB: app
      POSTGRES_USER: app
      POSTGRES_PASSWORD: app
    volumes:
      - db-data:/var/lib/postgresql/data
    ports:
      - "5432:5432"`
	dbURL := "postgres://app:app@db:5432/app"
	if primaryDatabase(stack) == "mongo" {
		db = `  db:
    image: mongo:7
    volumes:
      - db-data:/data/db
    ports:
      - "27017:27017"`
		dbURL = "mongodb://db:27017/app"
	}

	return fmt.Sprintf(`services:
  app:
    build: .
    container_name: %[1]s
    ports:
      - "%[2]d:%[2]d"
    environment:
      DATABASE_URL: %[3]s
      REDIS_URL: redis://redis:6379
    depends_on:
      - db
      - redis

%[4]s

  redis:
    image: redis:7-alpine
    ports:
      - "6379:6379"

volumes:
  db-data:
`, app, port, dbURL, db)
}
