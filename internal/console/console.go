// Package console is the interactive front desk menu over the triage service.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
)

const categoryPrompt = "0:General, 1:Emergency, 2:ICU, 3:Pediatric, 4:Surgical\nChoice: "

type Console struct {
	svc *services.TriageService
	in  *bufio.Scanner
	out io.Writer
}

func New(svc *services.TriageService, in io.Reader, out io.Writer) *Console {
	return &Console{svc: svc, in: bufio.NewScanner(in), out: out}
}

// Run shows the menu until the operator exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	defer c.println("System shutting down...")
	for {
		c.printMenu()
		choice, err := c.readInt(0, 7)
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case 1:
			err = c.registerPatient(ctx)
		case 2:
			err = c.hirePractitioner(ctx)
		case 3:
			err = c.assignPatient(ctx)
		case 4:
			err = c.treatPatient(ctx)
		case 5:
			c.println("\n=== WAITING ROOM STATUS ===")
			c.svc.DisplayWaitingRoom(ctx, c.out)
		case 6:
			err = c.showPractitioners(ctx)
		case 7:
			err = c.withdrawPatient(ctx)
		case 0:
			return nil
		}
		if err != nil {
			return ignoreEOF(err)
		}
	}
}

func (c *Console) printMenu() {
	c.println("\n==========================================")
	c.println("           HOSPITAL MANAGEMENT SYSTEM     ")
	c.println("==========================================")
	c.println(" 1. Register Patient (Add to Waiting Room)")
	c.println(" 2. Hire Doctor")
	c.println(" 3. ASSIGN Patient (Waiting Room -> Doctor)")
	c.println(" 4. TREAT Patient (Discharge)")
	c.println(" 5. View Waiting Room")
	c.println(" 6. View Doctors by Department")
	c.println(" 7. Delete Patient (From Waiting Room)")
	c.println(" 0. Exit")
	c.println("==========================================")
	c.print(" Select Option: ")
}

func (c *Console) registerPatient(ctx context.Context) error {
	c.println("\n=== REGISTER NEW PATIENT ===")
	c.print("Enter ID: ")
	id, err := c.readInt(models.MinID, models.MaxID)
	if err != nil {
		return err
	}
	c.print("Enter Name: ")
	name, err := c.readName()
	if err != nil {
		return err
	}
	c.print("Enter Age: ")
	age, err := c.readInt(models.MinPatientAge, models.MaxPatientAge)
	if err != nil {
		return err
	}
	c.print("Select Case Type:\n" + categoryPrompt)
	category, err := c.readCategory()
	if err != nil {
		return err
	}

	_, err = c.svc.RegisterPatient(ctx, id, name, age, category)
	switch {
	case err == nil:
		c.printf("Success: Patient %s added to Waiting Room.\n", name)
	case errors.Is(err, models.ErrDuplicateID):
		c.printf("Error: Patient ID %d is already registered.\n", id)
	default:
		c.printf("Error: %v\n", err)
	}
	return nil
}

func (c *Console) hirePractitioner(ctx context.Context) error {
	c.println("\n=== HIRE NEW DOCTOR ===")
	c.print("Enter ID: ")
	id, err := c.readInt(models.MinID, models.MaxID)
	if err != nil {
		return err
	}
	c.print("Enter Name: ")
	name, err := c.readName()
	if err != nil {
		return err
	}
	c.print("Enter Age: ")
	age, err := c.readInt(models.MinPractitionerAge, models.MaxPractitionerAge)
	if err != nil {
		return err
	}
	c.print("Select Specialization:\n" + categoryPrompt)
	category, err := c.readCategory()
	if err != nil {
		return err
	}

	_, err = c.svc.HirePractitioner(ctx, id, name, age, category)
	switch {
	case err == nil:
		c.printf("Doctor %s assigned to %s department.\n", name, category)
	case errors.Is(err, models.ErrDuplicateID):
		c.printf("Error: Doctor ID %d already works in the %s department.\n", id, category)
	default:
		c.printf("Error: %v\n", err)
	}
	return nil
}

func (c *Console) assignPatient(ctx context.Context) error {
	next, err := c.svc.PeekNextPatient(ctx)
	if err != nil {
		c.println("No patients in the waiting room.")
		return nil
	}

	c.println("\n=== ASSIGN PATIENT TO DOCTOR ===")
	c.printf("Patient: %s (Needs Dept: %s)\n", next.Name, next.Category)

	roster, err := c.svc.Practitioners(ctx, next.Category)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		c.println("CRITICAL: No doctors available in this department!")
		return nil
	}
	c.println("Available Doctors in this Department:")
	if err := c.svc.DisplayDepartment(ctx, next.Category, c.out); err != nil {
		return err
	}

	c.print("Enter Doctor ID to assign: ")
	docID, err := c.readInt(models.MinID, models.MaxID)
	if err != nil {
		return err
	}

	_, err = c.svc.AssignNextPatient(ctx, docID)
	switch {
	case err == nil:
		c.printf("Success: Patient transferred to Dr. ID %d\n", docID)
	case errors.Is(err, models.ErrInvalidSelection):
		c.println("Error: Invalid Doctor ID.")
	case errors.Is(err, models.ErrNoCapacity):
		c.println("CRITICAL: No doctors available in this department!")
	case errors.Is(err, models.ErrEmptyQueue):
		c.println("No patients in the waiting room.")
	default:
		c.printf("Error: %v\n", err)
	}
	return nil
}

func (c *Console) treatPatient(ctx context.Context) error {
	c.println("\n=== DOCTOR TREATMENT PORTAL ===")
	c.print("Select Department:\n" + categoryPrompt)
	category, err := c.readCategory()
	if err != nil {
		return err
	}

	roster, err := c.svc.Practitioners(ctx, category)
	if err != nil {
		return err
	}
	if len(roster) == 0 {
		c.println("No doctors in this department.")
		return nil
	}
	if err := c.svc.DisplayDepartment(ctx, category, c.out); err != nil {
		return err
	}

	c.print("Enter Doctor ID performing the treatment: ")
	docID, err := c.readInt(models.MinID, models.MaxID)
	if err != nil {
		return err
	}

	p, err := c.svc.TreatPatient(ctx, category, docID)
	switch {
	case err == nil:
		c.printf("Dr. ID %d treated patient %s. Patient discharged.\n", docID, p.Name)
	case errors.Is(err, models.ErrInvalidSelection):
		c.println("Error: Invalid Doctor ID.")
	case errors.Is(err, models.ErrNothingToTreat):
		c.printf("Dr. ID %d has no patients waiting.\n", docID)
	default:
		c.printf("Error: %v\n", err)
	}
	return nil
}

func (c *Console) showPractitioners(ctx context.Context) error {
	c.print("Select Department to View:\n" + categoryPrompt)
	category, err := c.readCategory()
	if err != nil {
		return err
	}
	c.printf("\n--- DOCTOR LIST (%s) ---\n", category)
	return c.svc.DisplayDepartment(ctx, category, c.out)
}

func (c *Console) withdrawPatient(ctx context.Context) error {
	if len(c.svc.WaitingRoom(ctx)) == 0 {
		c.println("Waiting room is empty.")
		return nil
	}
	c.print("Enter Patient ID to remove from Waiting Room: ")
	id, err := c.readInt(models.MinID, models.MaxID)
	if err != nil {
		return err
	}

	p, err := c.svc.WithdrawPatient(ctx, id)
	switch {
	case err == nil:
		c.printf("Patient %s removed successfully.\n", p.Name)
	case errors.Is(err, models.ErrNotFound):
		c.printf("Error: Patient ID %d is not in the Waiting Room.\n", id)
	default:
		c.printf("Error: %v\n", err)
	}
	return nil
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// readInt re-prompts until the line holds an integer in [lo, hi].
func (c *Console) readInt(lo, hi int) (int, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr == nil && n >= lo && n <= hi {
			return n, nil
		}
		c.printf("Invalid input. Please enter a number between %d and %d: ", lo, hi)
	}
}

func (c *Console) readName() (string, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if name := strings.TrimSpace(line); name != "" {
			return name, nil
		}
		c.print("Name cannot be empty. Enter Name: ")
	}
}

func (c *Console) readCategory() (models.Category, error) {
	n, err := c.readInt(int(models.General), models.CategoryCount-1)
	if err != nil {
		return 0, err
	}
	return models.Category(n), nil
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
