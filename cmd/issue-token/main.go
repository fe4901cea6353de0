package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/angelina-scw/course-enroll-backend-project/internal/config"
	"github.com/angelina-scw/course-enroll-backend-project/internal/service"
)

// issue-token mints a development bearer token signed with JWT_SECRET.
//
//	go run ./cmd/issue-token -login alice
func main() {
	var login, authorities string
	flag.StringVar(&login, "login", "", "Login name to put in the token subject (required)")
	flag.StringVar(&authorities, "auth", service.AuthorityUser, "Comma-separated authorities")
	flag.Parse()

	if strings.TrimSpace(login) == "" {
		fmt.Fprintln(os.Stderr, "-login is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	token, err := service.NewAuthService(cfg).GenerateToken(login, strings.Split(authorities, ","))
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
