package main

import (
	_ "donation_interface/docs"
	"donation_interface/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title        Donation Interface API
// @version      1.0
// @description  Runs donation forms through the globalcollect, payflowpro and paypal gateways. Donor sessions travel in the X-Donation-Session header; gateway declines are answered with 200 and a final_status.

// @contact.name  Fundraising Tech
// @license.name  GPL-2.0-or-later

// @host      localhost:8080
// @BasePath  /v1

// @tag.name         donations
// @tag.description  Gateway transactions, edit tokens and the gateway list
// @tag.name         tracking
// @tag.description  Analytics rows written for each donation

func main() {
	routes.Run()
}
