package service

import (
	"context"
	"time"

	"github.com/alexanderramin/rapport/internal/assistant"
	"github.com/alexanderramin/rapport/internal/domain"
)

// NewContact is the input for ContactService.Create. Blank Status means
// New and a nil ReputationScore means DefaultReputation.
type NewContact struct {
	Name            string `json:"name"`
	Role            string `json:"role"`
	Company         string `json:"company"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	ProfileImage    string `json:"profileImage"`
	Status          string `json:"relationshipStatus"`
	ReputationScore *int   `json:"reputationScore"`
}

// NewMeeting is the input for ContactService.LogMeeting. A nil Date means
// now; blank Sentiment means neutral.
type NewMeeting struct {
	Title     string
	Summary   string
	Sentiment domain.Sentiment
	Date      *time.Time
}

// NewFinance is the input for ContactService.RecordFinance. Blank Currency
// means USD.
type NewFinance struct {
	Amount      float64
	Currency    string
	Description string
	Type        domain.FinanceType
	Date        *time.Time
}

type ContactService interface {
	Create(ctx context.Context, in NewContact) (*domain.Person, error)
	Get(ctx context.Context, id string) (*domain.Person, error)
	List(ctx context.Context) ([]*domain.Person, error)
	Search(ctx context.Context, query string) ([]*domain.Person, error)
	Delete(ctx context.Context, id string) error
	AddTask(ctx context.Context, personID string, nt assistant.NewTask) (domain.Task, error)
	CompleteTask(ctx context.Context, personID, taskID string) (domain.Task, error)
	LogMeeting(ctx context.Context, personID string, in NewMeeting) (domain.Meeting, error)
	RecordFinance(ctx context.Context, personID string, in NewFinance) (domain.Finance, error)
}

type AssistantService interface {
	Process(ctx context.Context, personID, command string) (assistant.Response, error)
	Insight(ctx context.Context, personID string) (assistant.Response, error)
}
