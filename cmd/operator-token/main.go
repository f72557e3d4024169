// Command operator-token prints a signed operator JWT for the reservation
// status endpoint, using OPERATOR_JWT_SECRET from the environment.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/middleware"
	"github.com/Tushar07778/expert-session-booking/internal/utils"
)

func main() {
	sub := flag.String("sub", "operator", "token subject, logged with each status change")
	ttl := flag.Duration("ttl", 0, "token lifetime (default OPERATOR_TOKEN_TTL)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.OperatorJWTSecret == "" {
		log.Fatal("OPERATOR_JWT_SECRET is required")
	}
	lifetime := cfg.OperatorTokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	tok, err := utils.NewOperatorToken(cfg.OperatorJWTSecret, *sub, middleware.RoleOperator, lifetime)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(tok.Token)
	log.Printf("expires %s", tok.Exp.Format(time.RFC3339))
}
