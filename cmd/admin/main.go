package main

import (
	"fmt"
	"log"
	"os"

	"freightdesk/backend/internal/models"
	"freightdesk/backend/internal/storage"
	"freightdesk/backend/internal/workflow"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // CLI runs without Redis; event publishing is skipped
	engine := workflow.NewEngine(storageSvc)
	queue := workflow.NewApprovalQueue(storageSvc, engine)

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "list-pending":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin list-pending <department>")
			os.Exit(1)
		}
		pending, err := queue.ListPending(os.Args[2])
		if err != nil {
			log.Fatalf("Error listing approval queue: %v", err)
		}
		for _, c := range pending {
			fmt.Printf("%s  %s  %s  %s %s\n", c.ComplaintID, c.DisplayPriority, c.CustomerName, c.Date, c.Time)
		}
	case "show":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin show <complaint_id>")
			os.Exit(1)
		}
		if err := showComplaint(engine, os.Args[2]); err != nil {
			log.Fatalf("Error showing complaint: %v", err)
		}
	case "close":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin close <staff_id> <complaint_id> [remarks]")
			os.Exit(1)
		}
		remarks := ""
		if len(os.Args) > 4 {
			remarks = os.Args[4]
		}
		if err := closeComplaint(storageSvc, engine, os.Args[2], os.Args[3], remarks); err != nil {
			log.Fatalf("Error closing complaint: %v", err)
		}
		fmt.Printf("Complaint %s has been closed.\n", os.Args[3])
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func showComplaint(engine *workflow.Engine, complaintID string) error {
	c, err := engine.Storage.GetComplaintByID(complaintID)
	if err != nil {
		return err
	}
	fmt.Printf("%s  status=%s  department=%s  customer=%s\n", c.ComplaintID, c.Status, c.Department, c.CustomerName)

	timeline, err := engine.Timeline(complaintID)
	if err != nil {
		return err
	}
	for _, entry := range timeline {
		switch entry.Kind {
		case workflow.EntryRejection:
			fmt.Printf("  %s  REJECTED (%s) by %s: %s\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.RejectionStage, entry.ActorName, entry.RejectionReason)
		default:
			fmt.Printf("  %s  %s by %s  %s\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"), entry.TransactionType, entry.ActorName, entry.Remarks)
		}
	}
	return nil
}

func closeComplaint(s storage.Storage, engine *workflow.Engine, staffID, complaintID, remarks string) error {
	staff, err := s.GetStaffByID(staffID)
	if err != nil {
		return err
	}

	department := ""
	if len(staff.Departments) > 0 {
		department = staff.Departments[0]
	}

	_, err = engine.ApplyAction(complaintID, staff.Actor(department), workflow.ActionRequest{
		Action:  models.ActionClose,
		Remarks: remarks,
	})
	return err
}
