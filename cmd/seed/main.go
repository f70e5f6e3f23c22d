package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/edudesk/edudesk-backend/config"
	"github.com/edudesk/edudesk-backend/internal/app/model"
	"github.com/edudesk/edudesk-backend/internal/app/repository"
	"github.com/edudesk/edudesk-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// Imports study sessions from an xlsx file into the account with the
// given email. Expected columns: Subject, Duration (min), Type, Notes.
func main() {
	if len(os.Args) < 3 {
		log.Fatal("Usage: go run cmd/seed/main.go <user_email> <xlsx_file_path>")
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	filePath := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db.GetDB())
	studyRepo := repository.NewStudyRepository(db.GetDB())

	user, err := userRepo.FindByEmail(email)
	if err != nil {
		log.Fatal("User not found:", email)
	}

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	sessions, err := readSessionsFromXLSX(filePath, user.ID)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total sessions to import for %s: %d\n", email, len(sessions))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := studyRepo.BulkCreate(sessions, batchSize); err != nil {
		log.Fatal("Failed to bulk create study sessions:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total sessions imported: %d\n", len(sessions))
}

func readSessionsFromXLSX(filePath string, userID uint) ([]model.StudySession, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data rows found in sheet %s", sheetName)
	}

	sessions := make([]model.StudySession, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) < 2 {
			continue
		}

		subject := strings.TrimSpace(row[0])
		if subject == "" {
			continue
		}

		minutes, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil || minutes <= 0 {
			fmt.Printf("Skipping row %d: invalid duration %q\n", i+2, row[1])
			continue
		}

		session := model.StudySession{
			UserID:          userID,
			Subject:         subject,
			DurationMinutes: minutes,
			SessionType:     "focus",
		}
		if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
			session.SessionType = strings.TrimSpace(row[2])
		}
		if len(row) > 3 {
			session.Notes = strings.TrimSpace(row[3])
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}
