package canvas

import (
	"fmt"
	"regexp"
	"strings"
)

// Preview holds the generated infrastructure text for a graph. The output
// is advisory template text, not validated configuration.
type Preview struct {
	Terraform  string `json:"terraform"`
	Kubernetes string `json:"kubernetes"`
}

// GeneratePreview maps each node to a Terraform resource block and, where it
// makes sense, a Kubernetes manifest. Edges only affect ordering hints in
// comments; the canvas carries no deeper semantics.
func GeneratePreview(g *Graph) Preview {
	var tf, k8s strings.Builder

	tf.WriteString("# Generated from canvas\n\n")
	for _, n := range g.Nodes {
		tf.WriteString(terraformBlock(n))
		tf.WriteString("\n")
	}

	k8s.WriteString("# Generated from canvas\n")
	for _, n := range g.Nodes {
		if block := kubernetesBlock(n); block != "" {
			k8s.WriteString("---\n")
			k8s.WriteString(block)
		}
	}

	return Preview{Terraform: tf.String(), Kubernetes: k8s.String()}
}

var nonName = regexp.MustCompile(`[^a-z0-9_]+`)

func resourceName(n Node) string {
	s := strings.ToLower(strings.TrimSpace(n.Label))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = nonName.ReplaceAllString(s, "")
	if s == "" {
		s = strings.ToLower(strings.ReplaceAll(n.ID, "-", "_"))
		s = nonName.ReplaceAllString(s, "")
	}
	if s == "" {
		s = string(n.Type)
	}
	return s
}

func terraformBlock(n Node) string {
	name := resourceName(n)
	switch n.Type {
	case NodeAPIServer:
		return fmt.Sprintf(`resource "aws_instance" "%s" {
  ami           = data.aws_ami.app.id
  instance_type = "t3.medium"

  tags = {
    Role = "api-server"
  }
}
`, name)
	case NodeDatabase:
		return fmt.Sprintf(`resource "aws_db_instance" "%s" {
  engine            = "postgres"
  engine_version    = "16"
  instance_class    = "db.t4g.micro"
  allocated_storage = 20
  skip_final_snapshot = true
}
`, name)
	case NodeLoadBalancer:
		return fmt.Sprintf(`resource "aws_lb" "%s" {
  load_balancer_type = "application"
  subnets            = module.vpc.public_subnets
}
`, name)
	case NodeCache:
		return fmt.Sprintf(`resource "aws_elasticache_cluster" "%s" {
  engine          = "redis"
  node_type       = "cache.t4g.micro"
  num_cache_nodes = 1
}
`, name)
	case NodeQueue:
		return fmt.Sprintf(`resource "aws_sqs_queue" "%s" {
  visibility_timeout_seconds = 30
}
`, name)
	case NodeStorage:
		return fmt.Sprintf(`resource "aws_s3_bucket" "%s" {
  bucket_prefix = "%s-"
}
`, name, strings.ReplaceAll(name, "_", "-"))
	case NodeCDN:
		return fmt.Sprintf(`resource "aws_cloudfront_distribution" "%s" {
  enabled = true

  default_cache_behavior {
    viewer_protocol_policy = "redirect-to-https"
  }
}
`, name)
	}
	return ""
}

func kubernetesBlock(n Node) string {
	name := strings.ReplaceAll(resourceName(n), "_", "-")
	switch n.Type {
	case NodeAPIServer:
		return fmt.Sprintf(`apiVersion: apps/v1
kind: Deployment
metadata:
  name: %[1]s
spec:
  replicas: 2
  selector:
    matchLabels:
      app: %[1]s
  template:
    metadata:
      labels:
        app: %[1]s
    spec:
      containers:
        - name: %[1]s
          image: %[1]s:latest
          ports:
            - containerPort: 8080
`, name)
	case NodeLoadBalancer:
		return fmt.Sprintf(`apiVersion: v1
kind: Service
metadata:
  name: %s
spec:
  type: LoadBalancer
  ports:
    - port: 80
      targetPort: 8080
`, name)
	case NodeCache:
		return fmt.Sprintf(`apiVersion: apps/v1
kind: StatefulSet
metadata:
  name: %[1]s
spec:
  serviceName: %[1]s
  replicas: 1
  selector:
    matchLabels:
      app: %[1]s
  template:
    metadata:
      labels:
        app: %[1]s
    spec:
      containers:
        - name: redis
          image: redis:7-alpine
          ports:
            - containerPort: 6379
`, name)
	case NodeDatabase, NodeQueue, NodeStorage, NodeCDN:
		// managed services; no in-cluster manifest
		return ""
	}
	return ""
}
