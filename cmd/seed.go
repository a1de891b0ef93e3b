package cmd

import (
	"fmt"
	"os"
	"time"

	"robocamp/internal/domain/catalog"
	"robocamp/internal/domain/enrollment"
	"robocamp/internal/domain/user"
	"robocamp/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo data",
	Long: `Insert a demo admin account, instructors, courses and discount
codes. Safe to run repeatedly; existing rows are left untouched.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := connectForCLI()

		if err := seedDemoData(db); err != nil {
			logger.Error("Seeding failed: %v", err)
			os.Exit(1)
		}
		fmt.Println("Demo data loaded successfully!")
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func seedDemoData(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &user.User{
		Email:        "admin@robocamp.example",
		PasswordHash: string(hash),
		FirstName:    "Site",
		LastName:     "Admin",
		Role:         user.RoleAdmin,
	}
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	instructors := []*catalog.Instructor{
		{Name: "Maya Chen", Bio: "Mechanical engineer and FIRST Robotics mentor with a decade of classroom experience."},
		{Name: "Derek Okafor", Bio: "Former firmware developer who teaches kids to love sensors and servos."},
	}
	for _, inst := range instructors {
		if err := db.Where("name = ?", inst.Name).FirstOrCreate(inst).Error; err != nil {
			return fmt.Errorf("failed to seed instructor %s: %w", inst.Name, err)
		}
	}

	termStart := nextMonday(time.Now())
	courses := []*catalog.Course{
		{
			Title:           "Junior Robotics Explorers",
			Description:     "A first robotics course: build and program simple wheeled robots.",
			MinAge:          7,
			MaxAge:          10,
			Capacity:        12,
			Price:           decimal.NewFromInt(300),
			DiscountedPrice: decimal.NewNullDecimal(decimal.NewFromInt(250)),
			StartDate:       termStart,
			EndDate:         termStart.AddDate(0, 2, 0),
			Schedule:        "Saturdays 10:00-12:00",
			Location:        "Main Lab",
			InstructorID:    &instructors[0].ID,
		},
		{
			Title:        "Intermediate Builders",
			Description:  "Sensors, line following and the basics of autonomous navigation.",
			MinAge:       10,
			MaxAge:       13,
			Capacity:     10,
			Price:        decimal.NewFromInt(350),
			StartDate:    termStart,
			EndDate:      termStart.AddDate(0, 2, 0),
			Schedule:     "Saturdays 13:00-15:30",
			Location:     "Main Lab",
			InstructorID: &instructors[1].ID,
		},
		{
			Title:       "Competition Prep",
			Description: "Advanced build and strategy course for competition teams.",
			MinAge:      12,
			MaxAge:      16,
			Capacity:    8,
			Price:       decimal.NewFromInt(450),
			StartDate:   termStart.AddDate(0, 1, 0),
			EndDate:     termStart.AddDate(0, 4, 0),
			Schedule:    "Sundays 10:00-13:00",
			Location:    "Competition Arena",
		},
	}
	for _, c := range courses {
		c.IsActive = true
		if err := db.Where("title = ?", c.Title).FirstOrCreate(c).Error; err != nil {
			return fmt.Errorf("failed to seed course %s: %w", c.Title, err)
		}
	}

	maxUses := 100
	codes := []*enrollment.DiscountCode{
		{
			Code:               "SIBLING10",
			Description:        "10% off for siblings of enrolled students",
			DiscountPercentage: 10,
			IsActive:           true,
			MaxUses:            &maxUses,
		},
		{
			Code:               "EARLYBIRD15",
			Description:        "15% off registrations before the term starts",
			DiscountPercentage: 15,
			IsActive:           true,
			EndDate:            &termStart,
		},
	}
	for _, dc := range codes {
		if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
			Create(dc).Error; err != nil {
			return fmt.Errorf("failed to seed discount code %s: %w", dc.Code, err)
		}
	}

	return nil
}

func nextMonday(from time.Time) time.Time {
	d := from.AddDate(0, 0, 1)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
