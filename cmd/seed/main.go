package main

import (
	"encoding/json"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"cleanbook/internal/database"
	"cleanbook/internal/domain"
)

func main() {
	_ = godotenv.Load()

	db, err := database.Connect("cleanbook.db")
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}

	log.Info().Msg("running AutoMigrate")
	if err := db.AutoMigrate(
		&domain.Organization{},
		&domain.User{},
		&domain.Store{},
		&domain.Service{},
		&domain.ServiceOption{},
		&domain.Customer{},
		&domain.Booking{},
		&domain.Shift{},
		&domain.AuditRecord{},
	); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	log.Info().Msg("cleaning old data")
	db.Exec("DELETE FROM audit_records")
	db.Exec("DELETE FROM shifts")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM customers")
	db.Exec("DELETE FROM service_options")
	db.Exec("DELETE FROM services")
	db.Exec("DELETE FROM stores")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM organizations")

	// Organizations: one on every plan tier that changes behavior.
	proOrg := domain.Organization{Name: "Sparkle Cleaning Co", Plan: domain.PlanPro}
	db.Create(&proOrg)
	freeOrg := domain.Organization{Name: "Budget Brooms", Plan: domain.PlanFree}
	db.Create(&freeOrg)

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	owner := domain.User{
		OrganizationID: proOrg.ID,
		Email:          "owner@sparkle.example",
		PasswordHash:   string(ownerHash),
		Name:           "Dana Ives",
		Role:           domain.RoleOwner,
	}
	db.Create(&owner)

	staffHash, _ := bcrypt.GenerateFromPassword([]byte("staff123"), bcrypt.DefaultCost)
	staff := []domain.User{
		{OrganizationID: proOrg.ID, Email: "kim@sparkle.example", PasswordHash: string(staffHash), Name: "Kim Ray", Role: domain.RoleStaff, CalendarID: "cal-kim"},
		{OrganizationID: proOrg.ID, Email: "ash@sparkle.example", PasswordHash: string(staffHash), Name: "Ash Moor", Role: domain.RoleStaff, CalendarID: "cal-ash"},
	}
	for i := range staff {
		db.Create(&staff[i])
	}

	// Downtown runs on the shared capacity pool with top-level pair-shaped
	// hours. Uptown runs staff shifts and still keeps its schedule nested in
	// the legacy settings blob, object-shaped.
	downtownHours := json.RawMessage(`{
		"mon": ["08:00", "20:00"],
		"tue": ["08:00", "20:00"],
		"wed": ["08:00", "20:00"],
		"thu": ["08:00", "20:00"],
		"fri": ["08:00", "18:00"],
		"sat": ["10:00", "16:00"]
	}`)
	downtown := domain.Store{
		OrganizationID: proOrg.ID,
		Slug:           "downtown",
		Name:           "Sparkle Downtown",
		Address:        "12 Main St",
		Phone:          "+1 555 0100",
		MaxCapacity:    3,
		Mode:           domain.AvailabilityCapacityPool,
		BusinessHours:  downtownHours,
	}
	db.Create(&downtown)

	uptownSettings := json.RawMessage(`{
		"business_hours": {
			"mon": {"open": "09:00", "close": "18:00"},
			"tue": {"open": "09:00", "close": "18:00"},
			"wed": {"open": "09:00", "close": "18:00"},
			"thu": {"open": "09:00", "close": "18:00"},
			"fri": {"open": "09:00", "close": "18:00"},
			"sun": {"open": "10:00", "close": "14:00", "isOpen": false}
		},
		"theme": "mint"
	}`)
	uptown := domain.Store{
		OrganizationID: proOrg.ID,
		Slug:           "uptown",
		Name:           "Sparkle Uptown",
		Address:        "80 Hill Ave",
		Phone:          "+1 555 0101",
		Mode:           domain.AvailabilityStaffShift,
		Settings:       uptownSettings,
	}
	db.Create(&uptown)

	budget := domain.Store{
		OrganizationID: freeOrg.ID,
		Slug:           "budget",
		Name:           "Budget Brooms Central",
		Mode:           domain.AvailabilityCapacityPool,
	}
	db.Create(&budget)

	log.Info().Msg("creating services")
	for _, store := range []domain.Store{downtown, uptown} {
		standard := domain.Service{
			StoreID:     store.ID,
			Name:        "Standard Clean",
			Description: "Routine cleaning for homes up to three rooms",
			Price:       5000,
			DurationMin: 60,
			BufferMin:   10,
			Active:      true,
		}
		db.Create(&standard)
		db.Create(&domain.ServiceOption{ServiceID: standard.ID, Name: "Inside fridge", Price: 1000, DurationMin: 15})
		db.Create(&domain.ServiceOption{ServiceID: standard.ID, Name: "Inside oven", Price: 1200, DurationMin: 20})

		deep := domain.Service{
			StoreID:     store.ID,
			Name:        "Deep Clean",
			Description: "Top-to-bottom clean including baseboards and vents",
			Price:       12000,
			DurationMin: 150,
			BufferMin:   20,
			Active:      true,
		}
		db.Create(&deep)
		db.Create(&domain.ServiceOption{ServiceID: deep.ID, Name: "Carpet shampoo", Price: 3000, DurationMin: 45})
	}

	log.Info().Msg("creating shifts")
	weekStart := time.Now().UTC().Truncate(24 * time.Hour)
	for day := 0; day < 7; day++ {
		date := weekStart.AddDate(0, 0, day)
		db.Create(&domain.Shift{
			StoreID:   uptown.ID,
			StaffID:   staff[0].ID,
			StartTime: date.Add(9 * time.Hour),
			EndTime:   date.Add(18 * time.Hour),
			Published: true,
		})
		db.Create(&domain.Shift{
			StoreID:   uptown.ID,
			StaffID:   staff[1].ID,
			StartTime: date.Add(12 * time.Hour),
			EndTime:   date.Add(18 * time.Hour),
			Published: day%2 == 0,
		})
	}

	log.Info().Msg("creating bookings")
	customer := domain.Customer{Name: "Jordan Lee", Phone: "+1 555 0199", Email: "jordan@example.com"}
	db.Create(&customer)

	tomorrow := weekStart.AddDate(0, 0, 1)
	db.Create(&domain.Booking{
		StoreID:     downtown.ID,
		CustomerID:  customer.ID,
		StartTime:   tomorrow.Add(10 * time.Hour),
		EndTime:     tomorrow.Add(12 * time.Hour),
		Status:      domain.BookingConfirmed,
		TotalAmount: 11000,
	})

	expired := time.Now().UTC().Add(-5 * time.Minute)
	db.Create(&domain.Booking{
		StoreID:     downtown.ID,
		CustomerID:  customer.ID,
		StartTime:   tomorrow.Add(14 * time.Hour),
		EndTime:     tomorrow.Add(16 * time.Hour),
		Status:      domain.BookingPendingPayment,
		TotalAmount: 12000,
		ExpiresAt:   &expired,
	})

	log.Info().Msg("seed completed")
	log.Info().Msg("owner login: owner@sparkle.example / owner123")
	log.Info().Msg("staff login: kim@sparkle.example / staff123")
}
