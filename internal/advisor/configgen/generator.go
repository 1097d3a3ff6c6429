// Package configgen produces infrastructure config artifacts for a project.
// Every generator is a total function over the TechStack enum returning
// literal template text; nothing here is parsed or validated as real
// infrastructure configuration.
package configgen

import (
	"regexp"
	"strings"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

type Type string

const (
	TypeDockerfile    Type = "dockerfile"
	TypeKubernetes    Type = "kubernetes"
	TypeTerraform     Type = "terraform"
	TypeCIPipeline    Type = "ci_pipeline"
	TypeDockerCompose Type = "docker_compose"
)

// Types lists the closed set of artifact kinds, in generation order.
func Types() []Type {
	return []Type{TypeDockerfile, TypeKubernetes, TypeTerraform, TypeCIPipeline, TypeDockerCompose}
}

type Artifact struct {
	Type    Type   `json:"type"`
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Generate produces one artifact per kind for the project.
func Generate(p *projects.Project) []Artifact {
	app := slug(p.Name)
	return []Artifact{
		{Type: TypeDockerfile, Name: "Dockerfile", Content: Dockerfile(p.TechStack)},
		{Type: TypeKubernetes, Name: "deployment.yaml", Content: Kubernetes(app, p.TechStack)},
		{Type: TypeTerraform, Name: "main.tf", Content: Terraform(app, p.TechStack)},
		{Type: TypeCIPipeline, Name: ".github/workflows/deploy.yml", Content: CIPipeline(p.TechStack)},
		{Type: TypeDockerCompose, Name: "docker-compose.yml", Content: DockerCompose(app, p.TechStack)},
	}
}

var nonSlug = regexp.MustCompile(`[^a-z0-9-]+`)

// slug makes a DNS-label-safe name out of a project name.
func slug(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "app"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

// appPort is the conventional listen port for each stack.
func appPort(stack projects.TechStack) int {
	switch stack {
	case projects.StackDjango:
		return 8000
	case projects.StackFlask:
		return 5000
	case projects.StackLaravel:
		return 8080
	case projects.StackGolang:
		return 8080
	default: // node family and rails
		return 3000
	}
}

// primaryDatabase names the conventional datastore for each stack.
func primaryDatabase(stack projects.TechStack) string {
	switch stack {
	case projects.StackMERN, projects.StackMEAN:
		return "mongo"
	default:
		return "postgres"
	}
}
