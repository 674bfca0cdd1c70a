package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/vaultcore/api/internal/server/auth"
	"github.com/vaultcore/api/internal/server/models"
	"github.com/vaultcore/api/internal/server/repositories/users"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// ValidateNewUser checks seeding input and returns one message per problem.
// An empty result means the input is acceptable.
func ValidateNewUser(username, password, password2, email string) []string {
	var problems []string
	if username == "" {
		problems = append(problems, "Username required.")
	}
	if password != password2 {
		problems = append(problems, "Passwords don't match.")
	}
	if len(password) < 8 {
		problems = append(problems, "Password must be at least 8 characters long.")
	}
	if !emailPattern.MatchString(email) {
		problems = append(problems, "Invalid email.")
	}
	return problems
}

// Seeder creates privileged accounts from interactive input.
type Seeder struct {
	repo users.Repository
	in   *bufio.Reader
	out  io.Writer
}

func NewSeeder(repo users.Repository, in *bufio.Reader, out io.Writer) *Seeder {
	return &Seeder{repo: repo, in: in, out: out}
}

// CreateAdmin prompts for account details and creates an admin. It refuses
// to run when an admin already exists.
func (s *Seeder) CreateAdmin(ctx context.Context) error {
	exists, err := s.repo.HasRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("error checking for existing admin: %w", err)
	}
	if exists {
		fmt.Fprintln(s.out, "Admin already exists. Aborting...")
		return nil
	}
	return s.createUser(ctx, models.RoleAdmin)
}

// CreateEditor prompts for account details and creates an editor.
func (s *Seeder) CreateEditor(ctx context.Context) error {
	return s.createUser(ctx, models.RoleEditor)
}

func (s *Seeder) createUser(ctx context.Context, role models.Role) error {
	username, err := GetSimpleText(s.in, "Username", s.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Password", s.out)
	if err != nil {
		return err
	}
	password2, err := GetPassword("Confirm Password", s.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(s.in, "Email address", s.out)
	if err != nil {
		return err
	}

	if problems := ValidateNewUser(username, password, password2, email); len(problems) > 0 {
		fmt.Fprintf(s.out, "\n%s wasn't created:\n", roleTitle(role))
		for i, msg := range problems {
			fmt.Fprintf(s.out, "%d. %s\n", i+1, msg)
		}
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash, Role: role}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("error creating user: %w", err)
	}

	fmt.Fprintf(s.out, "%s user was successfully created\n", roleTitle(role))
	return nil
}

func roleTitle(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "Admin"
	case models.RoleEditor:
		return "Editor"
	}
	return string(role)
}
