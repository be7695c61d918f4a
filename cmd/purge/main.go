// Command purge performs ad-hoc delete operations against the datastore,
// useful when cleaning up development data. Exactly one mode flag is used
// per run.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/taskvault/taskvault/config"
)

func main() {
	todoText := flag.String("todos-text", "", "delete every todo whose text matches exactly")
	oneCompleted := flag.Bool("one-completed", false, "delete a single completed todo")
	userID := flag.String("user", "", "delete the user with this id (cascades to todos and tokens)")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	switch {
	case *todoText != "":
		res, err := db.Exec(`DELETE FROM todos WHERE text = $1`, *todoText)
		if err != nil {
			log.Fatalf("failed to delete todos: %v", err)
		}
		n, _ := res.RowsAffected()
		fmt.Printf("deleted %d todo(s) with text %q\n", n, *todoText)

	case *oneCompleted:
		var id, text string
		err := db.QueryRow(`
			DELETE FROM todos
			WHERE id = (SELECT id FROM todos WHERE completed ORDER BY created_at LIMIT 1)
			RETURNING id, text
		`).Scan(&id, &text)
		if err == sql.ErrNoRows {
			fmt.Println("no completed todos to delete")
			return
		}
		if err != nil {
			log.Fatalf("failed to delete completed todo: %v", err)
		}
		fmt.Printf("deleted completed todo %s: %q\n", id, text)

	case *userID != "":
		var email string
		err := db.QueryRow(`DELETE FROM users WHERE id = $1 RETURNING email`, *userID).Scan(&email)
		if err == sql.ErrNoRows {
			fmt.Printf("no user with id %s\n", *userID)
			return
		}
		if err != nil {
			log.Fatalf("failed to delete user: %v", err)
		}
		fmt.Printf("deleted user %s (%s)\n", *userID, email)

	default:
		flag.Usage()
	}
}
