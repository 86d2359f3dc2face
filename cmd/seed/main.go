package main

import (
	"context"
	"log"

	"funcity/internal/config"
	"funcity/internal/database"
	"funcity/internal/domain"
	jwtsvc "funcity/internal/pkg/jwt"
	"funcity/internal/repository"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var rides = map[domain.Location][]domain.Ride{
	domain.LocationE3: {
		{Name: "Bumper Cars", Description: "Classic dodgem arena", Price: 250, MinHeightCM: 110},
		{Name: "Go Karts", Description: "Outdoor track, 8 laps", Price: 600, MinHeightCM: 140},
		{Name: "Drop Tower", Description: "30 m free fall", Price: 350, MinHeightCM: 130},
		{Name: "Kiddie Train", Description: "Loop around the park", Price: 150},
	},
	domain.LocationE4: {
		{Name: "Trampoline Park", Description: "Per hour", Price: 400},
		{Name: "Laser Tag", Description: "Two rounds", Price: 450, MinHeightCM: 120},
		{Name: "VR Coaster", Description: "Headset ride", Price: 300, MinHeightCM: 125},
		{Name: "Soft Play", Description: "Under 8s", Price: 200},
	},
}

var dineItems = map[domain.Location][]domain.DineItem{
	domain.LocationE3: {
		{Name: "Masala Fries", Category: "snacks", Price: 140, Veg: true},
		{Name: "Paneer Wrap", Category: "mains", Price: 220, Veg: true},
		{Name: "Chicken Burger", Category: "mains", Price: 260},
		{Name: "Cold Coffee", Category: "beverages", Price: 120, Veg: true},
	},
	domain.LocationE4: {
		{Name: "Veg Pizza", Category: "mains", Price: 320, Veg: true},
		{Name: "Chicken Nuggets", Category: "snacks", Price: 210},
		{Name: "Fresh Lime Soda", Category: "beverages", Price: 90, Veg: true},
		{Name: "Brownie Sundae", Category: "desserts", Price: 180, Veg: true},
	},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed:", err)
	}

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	db, err := database.Connect(cfg.Database.URL, logger)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("migrate failed:", err)
	}

	// Cleanup old demo data. Orders and the payment ledger are left alone.
	log.Println("Cleaning catalog and profiles...")
	for _, loc := range domain.Locations() {
		db.Exec("DELETE FROM " + loc.RidesTable())
		db.Exec("DELETE FROM " + loc.DineItemsTable())
	}
	db.Exec("DELETE FROM profiles")

	ctx := context.Background()
	profiles := repository.NewProfileRepository(db)
	catalog := repository.NewCatalogRepository(db)
	tokens := jwtsvc.New(cfg.JWT.Secret, cfg.JWT.TTL)

	// ================== PROFILES ==================
	log.Println("Creating profiles...")
	seedProfiles := []domain.Profile{
		{ID: 1, Name: "Park Admin", Email: "admin@funcity.in", Phone: "9000000001", Role: domain.RoleAdmin},
		{ID: 2, Name: "Asha", Email: "asha@example.com", Phone: "9000000002", Role: domain.RoleCustomer},
		{ID: 3, Name: "Ravi", Phone: "9000000003", Role: domain.RoleCustomer},
		{ID: 4, Name: "Meera", Role: domain.RoleCustomer},
	}
	for i := range seedProfiles {
		p := seedProfiles[i]
		if err := profiles.Create(ctx, &p); err != nil {
			log.Fatalf("create profile %d: %v", p.ID, err)
		}
		loc := domain.LocationE3
		if p.ID%2 == 1 {
			loc = domain.LocationE4
		}
		token, err := tokens.GenerateToken(p.ID, string(p.Role), string(loc))
		if err != nil {
			log.Fatalf("token for %d: %v", p.ID, err)
		}
		log.Printf("profile %d (%s, %s) token: %s", p.ID, p.Name, p.Role, token)
	}

	// ================== CATALOG ==================
	log.Println("Creating catalog...")
	for loc, list := range rides {
		for i := range list {
			r := list[i]
			r.Active = true
			if err := catalog.CreateRide(ctx, loc, &r); err != nil {
				log.Fatalf("create ride %q at %s: %v", r.Name, loc, err)
			}
		}
		log.Printf("%s: %d rides", loc, len(list))
	}
	for loc, list := range dineItems {
		for i := range list {
			item := list[i]
			item.Active = true
			if err := catalog.CreateDineItem(ctx, loc, &item); err != nil {
				log.Fatalf("create dine item %q at %s: %v", item.Name, loc, err)
			}
		}
		log.Printf("%s: %d dine items", loc, len(list))
	}

	log.Println("Seed completed")
}
