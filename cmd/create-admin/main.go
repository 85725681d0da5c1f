package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/luoteng/stuinfo-backend/internal/config"
	"github.com/luoteng/stuinfo-backend/internal/database"
	"github.com/luoteng/stuinfo-backend/internal/logger"
	"github.com/luoteng/stuinfo-backend/internal/model"
	"github.com/luoteng/stuinfo-backend/internal/repository"
	"github.com/luoteng/stuinfo-backend/internal/service"
)

// Creates a new admin account, or resets the password of an existing one,
// with hidden password entry. Useful when the seeded default has been
// changed and forgotten.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Open SQLite ───────────────────────────────────────────────────
	db, err := database.Open(cfg.DatabasePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	adminRepo := repository.NewAdminRepository(db)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create or Reset Admin Account ===")

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if utf8.RuneCountInString(password) < service.MinPasswordLength {
		fmt.Printf("Error: Password must be at least %d characters\n", service.MinPasswordLength)
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	newAdmin := &model.Admin{
		Username:     username,
		PasswordHash: string(hash),
	}

	err = adminRepo.Create(ctx, newAdmin)
	if errors.Is(err, repository.ErrAdminUsernameTaken) {
		if err := adminRepo.UpdatePassword(ctx, username, string(hash)); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset password")
		}
		fmt.Printf("\nPassword reset for existing admin '%s'\n", username)
		return
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' created with ID: %d\n", newAdmin.Username, newAdmin.ID)
}
