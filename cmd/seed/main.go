package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"boardinghouse/internal/database"
	"boardinghouse/internal/domain"
)

func main() {
	db, err := database.Connect("boardinghouse.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bills")
	db.Exec("DELETE FROM contracts")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM boarding_houses")
	db.Exec("DELETE FROM password_reset_tokens")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	landlordHash, _ := bcrypt.GenerateFromPassword([]byte("landlord123"), bcrypt.DefaultCost)
	landlord := domain.User{
		Email:        "chu@nhatro.vn",
		PasswordHash: string(landlordHash),
		Role:         domain.RoleLandlord,
		Name:         "Nguyen Van Chu",
		Phone:        "+84 90 123 4567",
	}
	db.Create(&landlord)
	log.Println("Landlord created: chu@nhatro.vn / landlord123")

	tenants := []domain.User{}
	tenantEmails := []string{"an@gmail.com", "binh@gmail.com", "cuc@gmail.com"}
	for i, email := range tenantEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("tenant123"), bcrypt.DefaultCost)
		tenant := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleTenant,
			Name:         fmt.Sprintf("Tenant %d", i+1),
			Phone:        fmt.Sprintf("+84 91 234 56%02d", i+10),
		}
		db.Create(&tenant)
		tenants = append(tenants, tenant)
	}

	log.Println("Creating boarding house and rooms...")
	houseRow := domain.BoardingHouse{
		LandlordID: landlord.ID,
		Name:       "Nha Tro Binh An",
		Address:    "123 Le Loi",
		City:       "Ho Chi Minh City",
	}
	db.Create(&houseRow)

	rooms := make([]domain.Room, 0, 4)
	for i := 0; i < 4; i++ {
		r := domain.Room{
			HouseID:      houseRow.ID,
			LandlordID:   landlord.ID,
			RoomNumber:   fmt.Sprintf("10%d", i+1),
			RoomType:     domain.RoomSingle,
			Capacity:     1,
			MonthlyPrice: 1800000 + int64(i)*200000,
			Status:       domain.RoomAvailable,
		}
		db.Create(&r)
		rooms = append(rooms, r)
	}

	log.Println("Assigning tenants and issuing bills...")
	now := time.Now()
	for i, tenant := range tenants {
		r := rooms[i]
		tenantID := tenant.ID
		db.Model(&domain.Room{}).Where("id = ?", r.ID).Updates(map[string]interface{}{
			"tenant_id": tenantID,
			"status":    domain.RoomOccupied,
		})

		contract := domain.Contract{
			RoomID:      r.ID,
			TenantID:    tenantID,
			LandlordID:  landlord.ID,
			MonthlyRent: r.MonthlyPrice,
			Status:      domain.ContractActive,
			StartDate:   now.AddDate(0, -3, 0),
		}
		db.Create(&contract)

		electricity := int64(300000 + i*50000)
		water := int64(100000)
		db.Create(&domain.Bill{
			RoomID:      r.ID,
			ContractID:  contract.ID,
			TenantID:    tenantID,
			LandlordID:  landlord.ID,
			PeriodMonth: int(now.Month()),
			PeriodYear:  now.Year(),
			RoomCharge:  r.MonthlyPrice,
			Electricity: electricity,
			Water:       water,
			TotalAmount: r.MonthlyPrice + electricity + water,
			Status:      domain.BillUnpaid,
		})
	}

	log.Println("Seed complete.")
	log.Println("Tenant logins: an@gmail.com / binh@gmail.com / cuc@gmail.com, password tenant123")
}
