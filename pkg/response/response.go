// Package response defines the wire shapes of the HTTP API. Bodies are the
// bare resource documents ({todo}, {todos}, {id,email}); errors carry their
// detail under an "error" key. Password hashes and token sequences never
// appear in any shape.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskvault/taskvault/internal/domain/entity"
)

// Todo is the JSON representation of a todo document. CompletedAt is present
// exactly when the todo is completed.
type Todo struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Completed   bool   `json:"completed"`
	CompletedAt *int64 `json:"completedAt,omitempty"`
	OwnerID     string `json:"ownerId"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func FromTodo(t *entity.Todo) Todo {
	return Todo{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		OwnerID:     t.OwnerID,
	}
}

func FromTodos(ts []entity.Todo) []Todo {
	out := make([]Todo, 0, len(ts))
	for i := range ts {
		out = append(out, FromTodo(&ts[i]))
	}
	return out
}

func FromUser(u *entity.User) UserProfile {
	return UserProfile{ID: u.ID, Email: u.Email}
}

// Error writes a client error. A nil detail sends the bare status, matching
// routes whose failure contract is an empty body.
func Error(c *gin.Context, status int, detail any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if detail == nil {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"error": detail})
}
