// Command devtoken mints a bearer token signed with JWT_SECRET for local testing.
//
//	go run ./cmd/devtoken -user 7 -email alice@x.com -roles admin
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"eventura/config"
	"eventura/internal/adapters/auth"
)

func main() {
	userID := flag.Int64("user", 0, "user id (required)")
	email := flag.String("email", "", "email claim")
	roles := flag.String("roles", "", "comma-separated role codes")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "-user must be a positive id")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Environment == "production" {
		fmt.Fprintln(os.Stderr, "refusing to mint tokens in production")
		os.Exit(1)
	}

	var roleList []string
	for _, r := range strings.Split(*roles, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roleList = append(roleList, r)
		}
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, roleList, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
