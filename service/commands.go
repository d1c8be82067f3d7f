package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"folio/app/models"
	"folio/app/repositories"
)

// ErrCancelled is returned when the operator declines a confirmation.
var ErrCancelled = errors.New("operation cancelled")

// Maintenance runs the submission store housekeeping commands.
type Maintenance struct {
	DBPath string
	In     io.Reader
	Out    io.Writer
	// Yes skips confirmation prompts.
	Yes bool
}

func (m *Maintenance) out() io.Writer {
	if m.Out == nil {
		return os.Stdout
	}
	return m.Out
}

func (m *Maintenance) confirm(prompt string) bool {
	if m.Yes {
		return true
	}
	in := m.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(m.out(), "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	response := strings.TrimSpace(line)
	return response == "y" || response == "Y"
}

func (m *Maintenance) exists() bool {
	_, err := os.Stat(m.DBPath)
	return err == nil
}

func (m *Maintenance) open() (repositories.Maintainer, func(), error) {
	if m.DBPath == "" {
		return nil, nil, errors.New("db.path is empty; submissions are kept in memory")
	}
	db, err := repositories.OpenBadger(m.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return repositories.NewBadgerSubmissionRepository(db), func() { db.Close() }, nil
}

// List prints stored submissions, oldest first.
func (m *Maintenance) List(limit, offset int) ([]*models.Submission, error) {
	if !m.exists() {
		fmt.Fprintln(m.out(), "No database exists")
		return nil, nil
	}
	repo, closeDB, err := m.open()
	if err != nil {
		return nil, err
	}
	defer closeDB()

	submissions, err := repo.List(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	for _, s := range submissions {
		fmt.Fprintf(m.out(), "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.CreatedAt.Format(time.RFC3339), s.Status, s.Email, s.Reference)
	}
	return submissions, nil
}

// Show prints every stored field of one submission.
func (m *Maintenance) Show(id int) (*models.Submission, error) {
	if !m.exists() {
		fmt.Fprintln(m.out(), "No database exists")
		return nil, repositories.ErrNotFound
	}
	repo, closeDB, err := m.open()
	if err != nil {
		return nil, err
	}
	defer closeDB()

	submission, err := repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("submission %d: %w", id, err)
	}
	fmt.Fprintf(m.out(), "ID:        %d\n", submission.ID)
	fmt.Fprintf(m.out(), "Reference: %s\n", submission.Reference)
	fmt.Fprintf(m.out(), "Created:   %s\n", submission.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(m.out(), "Status:    %s\n", submission.Status)
	if submission.ProviderMessage != "" {
		fmt.Fprintf(m.out(), "Provider:  %s\n", submission.ProviderMessage)
	}
	fmt.Fprintf(m.out(), "From:      %s <%s>\n", submission.Name, submission.Email)
	fmt.Fprintf(m.out(), "\n%s\n", submission.Message)
	return submission, nil
}

// Delete removes one submission after confirmation.
func (m *Maintenance) Delete(id int) error {
	if !m.exists() {
		fmt.Fprintln(m.out(), "No database exists")
		return repositories.ErrNotFound
	}
	if !m.confirm(fmt.Sprintf("Delete submission %d?", id)) {
		fmt.Fprintln(m.out(), "Operation cancelled")
		return ErrCancelled
	}

	repo, closeDB, err := m.open()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.Delete(id); err != nil {
		return fmt.Errorf("submission %d: %w", id, err)
	}
	fmt.Fprintf(m.out(), "Submission %d deleted\n", id)
	return nil
}

// Purge drops every stored submission but keeps the database directory.
func (m *Maintenance) Purge() error {
	if !m.exists() {
		fmt.Fprintln(m.out(), "No database exists")
		return nil
	}
	if !m.confirm("Delete every stored submission?") {
		fmt.Fprintln(m.out(), "Operation cancelled")
		return ErrCancelled
	}

	repo, closeDB, err := m.open()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to purge submissions: %w", err)
	}
	fmt.Fprintln(m.out(), "All submissions deleted")
	return nil
}

// Clean removes the database.
func (m *Maintenance) Clean() error {
	if !m.exists() {
		fmt.Fprintln(m.out(), "Database is already clean (does not exist)")
		return nil
	}

	if !m.confirm("Are you sure you want to clean the database? This cannot be undone.") {
		fmt.Fprintln(m.out(), "Operation cancelled")
		return ErrCancelled
	}

	if err := os.RemoveAll(m.DBPath); err != nil {
		return fmt.Errorf("failed to clean database: %w", err)
	}
	fmt.Fprintln(m.out(), "Database cleaned successfully")
	return nil
}

// Backup writes a timestamped backup into dir and returns its path.
func (m *Maintenance) Backup(dir string) (string, error) {
	if !m.exists() {
		fmt.Fprintln(m.out(), "No database exists to backup")
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	repo, closeDB, err := m.open()
	if err != nil {
		return "", err
	}
	defer closeDB()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	if err := repo.Backup(f); err != nil {
		return "", err
	}

	fmt.Fprintf(m.out(), "Database backed up successfully to %s\n", backupFile)
	return backupFile, nil
}

// Restore replaces the database with the contents of backupFile.
func (m *Maintenance) Restore(backupFile string) error {
	fi, err := os.Stat(backupFile)
	if err != nil {
		return fmt.Errorf("backup file does not exist: %s", backupFile)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", backupFile)
	}

	if m.exists() {
		if !m.confirm("Existing database found. Do you want to replace it?") {
			fmt.Fprintln(m.out(), "Operation cancelled")
			return ErrCancelled
		}
		if err := os.RemoveAll(m.DBPath); err != nil {
			return fmt.Errorf("failed to remove existing database: %w", err)
		}
	}

	if err := os.MkdirAll(m.DBPath, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	repo, closeDB, err := m.open()
	if err != nil {
		return err
	}
	defer closeDB()

	f, err := os.Open(backupFile)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	if err := repo.Restore(f); err != nil {
		return err
	}

	fmt.Fprintln(m.out(), "Database restored successfully")
	return nil
}
