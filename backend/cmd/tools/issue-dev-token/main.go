// issue-dev-token signs an access token with the configured key, standing
// in for the identity provider during local development.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/huddle-dev/huddle/shared/config"
	"github.com/huddle-dev/huddle/shared/domain"
	"github.com/huddle-dev/huddle/shared/jwt"
)

func main() {
	var (
		id           string
		name         string
		ttl          time.Duration
		configFolder string
	)
	flag.StringVar(&id, "id", "", "user id (token subject)")
	flag.StringVar(&name, "name", "", "display name used for mentions")
	flag.DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	if id == "" || name == "" {
		fmt.Fprintln(os.Stderr, "usage: issue-dev-token -id <user id> -name <display name> [-ttl 24h]")
		os.Exit(2)
	}

	cfg := config.MustLoad(configFolder)
	token, err := jwt.New(cfg.JwtKey(), ttl).NewToken(domain.User{Id: id, Name: name})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
