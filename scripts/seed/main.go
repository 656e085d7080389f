// Seed creates a demo user with a few categories, todos and subtasks.
// Run from project root: go run ./scripts/seed
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"todoboard/internal/database"
	"todoboard/internal/models"
	"todoboard/internal/repository"
)

func main() {
	loadEnvFile(".env")

	ctx := context.Background()
	db := database.InitDB(ctx)
	if db == nil {
		fmt.Fprintln(os.Stderr, "DATABASE_URL not set or DB connection failed")
		os.Exit(1)
	}

	if err := database.MigrateOrCreateSchema(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Schema failed:", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	todos := repository.NewTodoRepository(db)

	user := &models.User{
		Name:         "Demo User",
		Email:        fmt.Sprintf("demo+%d@example.com", time.Now().Unix()),
		PasswordHash: "not-a-real-hash",
	}
	if err := users.Create(ctx, user); err != nil {
		fmt.Fprintln(os.Stderr, "Create user failed:", err)
		os.Exit(1)
	}

	categoryIDs := make(map[string]string)
	for _, name := range []string{"Work", "Home", "Errands"} {
		c := &models.Category{Name: name, UserID: user.ID}
		if err := categories.Create(ctx, c); err != nil {
			fmt.Fprintln(os.Stderr, "Create category failed:", err)
			os.Exit(1)
		}
		categoryIDs[name] = c.ID
	}

	due := time.Now().AddDate(0, 0, 7)
	parent := &models.Todo{
		Title:      "Plan the week",
		UserID:     user.ID,
		CategoryID: ptr(categoryIDs["Work"]),
		Priority:   models.PriorityHigh,
		DueDate:    &due,
	}
	if err := todos.Create(ctx, parent); err != nil {
		fmt.Fprintln(os.Stderr, "Create todo failed:", err)
		os.Exit(1)
	}

	for i, title := range []string{"Review inbox", "Write standup notes", "Book dentist"} {
		t := &models.Todo{
			Title:    title,
			UserID:   user.ID,
			Priority: models.PriorityMedium,
		}
		if i < 2 {
			t.ParentID = &parent.ID
			t.CategoryID = ptr(categoryIDs["Work"])
		} else {
			t.CategoryID = ptr(categoryIDs["Errands"])
		}
		if err := todos.Create(ctx, t); err != nil {
			fmt.Fprintln(os.Stderr, "Create todo failed:", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Seeded user %s with %d categories and 4 todos\n", user.ID, len(categoryIDs))
	fmt.Println("Mint a token with: go run ./scripts/gen-jwt", user.ID)
}

func ptr(s string) *string { return &s }

func loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		if strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
			val = strings.Trim(val, `"`)
		} else if strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
			val = strings.Trim(val, "'")
		}
		if key != "" && os.Getenv(key) == "" {
			_ = os.Setenv(key, val)
		}
	}
}
