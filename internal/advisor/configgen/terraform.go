package configgen

import (
	"fmt"

	"github.com/scale-advisor/scale-advisor-backend/internal/projects"
)

// Terraform returns an AWS baseline: VPC, ECS Fargate service behind an ALB,
// and a managed database matching the stack's conventional datastore.
func Terraform(app string, stack projects.TechStack) string {
	port := appPort(stack)
	dbBlock := terraformPostgres
	if primaryDatabase(stack) == "mongo" {
		dbBlock = terraformDocDB
	}

	return fmt.Sprintf(`terraform {
  required_version = ">= 1.5"
  required_providers {
    aws = {
      source  = "hashicorp/aws"
      version = "~> 5.0"
    }
  }
}

provider "aws" {
  region = var.region
}

variable "region" {
  default = "us-east-1"
}

module "vpc" {
  source  = "terraform-aws-modules/vpc/aws"
  version = "~> 5.0"

  name = "%[1]s-vpc"
  cidr = "10.0.0.0/16"

  azs             = ["${var.region}a", "${var.region}b"]
  private_subnets = ["10.0.1.0/24", "10.0.2.0/24"]
  public_subnets  = ["10.0.101.0/24", "10.0.102.0/24"]

  enable_nat_gateway = true
}

resource "aws_ecs_cluster" "main" {
  name = "%[1]s"
}

resource "aws_ecs_service" "app" {
  name            = "%[1]s"
  cluster         = aws_ecs_cluster.main.id
  task_definition = aws_ecs_task_definition.app.arn
  desired_count   = 2
  launch_type     = "FARGATE"

  network_configuration {
    subnets = module.vpc.private_subnets
  }

  load_balancer {
    target_group_arn = aws_lb_target_group.app.arn
    container_name   = "%[1]s"
    container_port   = %[2]d
  }
}

resource "aws_ecs_task_definition" "app" {
  family                   = "%[1]s"
  requires_compatibilities = ["FARGATE"]
  network_mode             = "awsvpc"
  cpu                      = 256
  memory                   = 512

  container_definitions = jsonencode([{
    name  = "%[1]s"
    image = "%[1]s:latest"
    portMappings = [{ containerPort = %[2]d }]
  }])
}

resource "aws_lb" "app" {
  name               = "%[1]s-alb"
  load_balancer_type = "application"
  subnets            = module.vpc.public_subnets
}

resource "aws_lb_target_group" "app" {
  name        = "%[1]s-tg"
  port        = %[2]d
  protocol    = "HTTP"
  vpc_id      = module.vpc.vpc_id
  target_type = "ip"

  health_check {
    path = "/health"
  }
}

%[3]s`, app, port, fmt.Sprintf(dbBlock, app))
}

const terraformPostgres = `resource "aws_db_instance" "main" {
  identifier        = "%[1]s-db"
  engine            = "postgres"
  engine_version    = "16"
  instance_class    = "db.t4g.micro"
  allocated_storage = 20
  db_name           = "app"
  username          = "app"
  manage_master_user_password = true
  skip_final_snapshot         = true
}
`

const terraformDocDB = `resource "aws_docdb_cluster" "main" {
  cluster_identifier = "%[1]s-docdb"
  engine             = "docdb"
  master_username    = "app"
  master_password    = "change-me"
  skip_final_snapshot = true
}

resource "aws_docdb_cluster_instance" "main" {
  identifier         = "%[1]s-docdb-0"
  cluster_identifier = aws_docdb_cluster.main.id
  instance_class     = "db.t4g.medium"
}
`
