package main

import (
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/OrinocoLabs01/lab-scheduler/internal/config"
	dbpkg "github.com/OrinocoLabs01/lab-scheduler/internal/db"
	domain "github.com/OrinocoLabs01/lab-scheduler/internal/domain/scheduling"
	"github.com/OrinocoLabs01/lab-scheduler/internal/models"
	"github.com/OrinocoLabs01/lab-scheduler/internal/timezone"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	gofakeit.Seed(time.Now().UnixNano())

	patients, err := seedPatients(db, 50)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	if err := seedAppointments(db, patients, 80); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedPatients(db *gorm.DB, count int) ([]models.Patient, error) {
	log.Printf("seeding %d patients", count)

	patients := make([]models.Patient, 0, count)
	for i := 0; i < count; i++ {
		p := models.Patient{
			Name:   gofakeit.Name(),
			Email:  gofakeit.Email(),
			Phone:  fmt.Sprintf("0412%07d", gofakeit.Number(0, 9999999)),
			Locale: "es-VE",
		}
		if err := db.Create(&p).Error; err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}

	return patients, nil
}

var studyCatalog = []string{
	"Hematología completa",
	"Glicemia en ayunas",
	"Perfil lipídico",
	"Perfil tiroideo",
	"Urianálisis",
	"Perfil hepático",
	"HbA1c",
}

func seedAppointments(db *gorm.DB, patients []models.Patient, count int) error {
	log.Printf("seeding %d appointments", count)

	locations := domain.Locations()
	loc := timezone.Location(timezone.DefaultTimezone)

	created := 0
	for attempts := 0; created < count && attempts < count*3; attempts++ {
		location := locations[gofakeit.Number(0, len(locations)-1)]
		grid := domain.TemplateFor(location).Slots()

		date := timezone.Now().AddDate(0, 0, gofakeit.Number(1, 14)).Format("2006-01-02")
		slot := grid[gofakeit.Number(0, len(grid)-1)]

		start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, loc)
		if err != nil {
			return err
		}

		nStudies := gofakeit.Number(1, 3)
		studies := make([]string, 0, nStudies)
		for i := 0; i < nStudies; i++ {
			studies = append(studies, studyCatalog[gofakeit.Number(0, len(studyCatalog)-1)])
		}

		patient := patients[gofakeit.Number(0, len(patients)-1)]

		ap := models.Appointment{
			PublicID:  uuid.New(),
			PatientID: patient.ID,
			StartTime: start,
			Date:      date,
			Time:      slot,
			Location:  location,
			Studies:   pq.StringArray(studies),
			Status:    string(domain.StatusPending),
		}

		// los choques con el índice único parcial simplemente se reintentan
		if err := db.Create(&ap).Error; err != nil {
			continue
		}
		created++
	}

	log.Printf("appointments seeded: %d", created)
	return nil
}
