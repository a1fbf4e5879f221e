// Command client exercises the marketplace client core from the terminal:
// request an OTP, verify it, then refresh and print the role's catalogs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"droneRentalMarketplace/internal/api"
	"droneRentalMarketplace/internal/config"
	"droneRentalMarketplace/internal/session"
	"droneRentalMarketplace/internal/state"
	"droneRentalMarketplace/models"
)

func main() {
	mobile := flag.String("mobile", "", "mobile number to sign in with")
	otp := flag.String("otp", "", "one-time password (request one by omitting this flag)")
	roleFlag := flag.String("role", "farmer", "role to sign in as: farmer or owner")
	name := flag.String("name", "", "profile name, required on first sign-in")
	flag.Parse()

	cfg, err := config.LoadWithDefaults()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	client, err := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}
	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	app, err := state.New(client, store)
	if err != nil {
		log.Fatalf("restore state: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *mobile != "" && *otp == "" {
		resp, err := app.RequestOTP(ctx, *mobile)
		if err != nil {
			log.Fatalf("request otp: %v", err)
		}
		fmt.Printf("OTP sent to %s\n", resp.Mobile)
		if resp.DemoOTP != nil {
			fmt.Printf("demo OTP: %s\n", *resp.DemoOTP)
		}
		return
	}

	if *mobile != "" && *otp != "" {
		role, ok := models.ParseRole(*roleFlag)
		if !ok {
			log.Fatalf("unknown role %q", *roleFlag)
		}
		var namePtr *string
		if *name != "" {
			namePtr = name
		}
		if _, err := app.VerifyOTP(ctx, *mobile, *otp, role, namePtr, nil, nil); err != nil {
			log.Fatalf("verify otp: %v", err)
		}
		fmt.Printf("signed in as %s\n", *mobile)
	}

	phase, role := app.Phase()
	switch phase {
	case state.PhaseUnauthenticated:
		fmt.Println("not signed in; pass -mobile to request an OTP")
		return
	case state.PhaseAwaitingRoleSelection:
		fmt.Printf("account holds roles %v; pass -role to choose one\n", app.AvailableRoles())
		if r, ok := models.ParseRole(*roleFlag); ok {
			if err := app.SwitchRole(r); err != nil {
				log.Fatalf("switch role: %v", err)
			}
		}
		phase, role = app.Phase()
		if phase != state.PhaseActive {
			return
		}
	}

	if err := app.RefreshData(ctx); err != nil {
		log.Fatalf("refresh: %v", err)
	}

	fmt.Printf("active role: %s\n", role.Label())
	if role == models.RoleOwner {
		fmt.Printf("owned drones: %d\n", len(app.OwnerDrones()))
		for _, d := range app.OwnerDrones() {
			fmt.Printf("  #%d %s (%s) ₹%.0f/hr [%s]\n", d.ID, d.Name, d.Type, d.PricePerHour, d.Status)
		}
	} else {
		fmt.Printf("catalog: %d drones\n", len(app.Drones()))
		for _, d := range app.DisplayedDrones() {
			fmt.Printf("  #%d %s (%s) ₹%.0f/hr [%s]\n", d.ID, d.Name, d.Type, d.PricePerHour, d.Status)
		}
	}
	fmt.Printf("bookings: %d (%d pending)\n", len(app.Bookings()), app.PendingBookingCount())
}
