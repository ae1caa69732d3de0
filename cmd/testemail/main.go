// Package main provides a CLI tool that verifies the SMTP configuration by
// sending a test email.
package main

import (
	"flag"
	"log"

	"github.com/weather-alerts/internal/config"
	"github.com/weather-alerts/internal/email"
)

func main() {
	to := flag.String("to", "", "Recipient address for the test email")
	subject := flag.String("subject", "Weather Alert Service Test Email", "Subject line for the test email")
	flag.Parse()

	if *to == "" {
		log.Fatal("Usage: testemail -to recipient@example.com")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := email.NewClient(&cfg.SMTP)

	log.Printf("Sending test email to %s via %s:%d...", *to, cfg.SMTP.Host, cfg.SMTP.Port)
	if err := client.SendTest(*to, *subject); err != nil {
		log.Fatalf("Test email failed: %v", err)
	}

	log.Println("Test email sent successfully")
}
