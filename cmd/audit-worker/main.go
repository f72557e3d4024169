// Command audit-worker consumes slot_booked events from RabbitMQ and
// appends one line per booking to the audit log.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tushar07778/expert-session-booking/internal/config"
	"github.com/Tushar07778/expert-session-booking/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: cfg.RabbitMQURL, Queue: cfg.SlotBookedQueue, LogDir: cfg.AuditLogDir}
	log.Printf("audit worker: consuming %s into %s", cfg.SlotBookedQueue, cfg.AuditLogDir)
	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("audit worker: %v", err)
	}
}
