package main

import (
	"context"
	"log"
	"time"

	"case-governance-be/internal/config"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"
	"case-governance-be/pkg/database"
	"case-governance-be/pkg/embedding"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedDocument struct {
	DocId    string
	Title    string
	Category string
	Content  string
}

// A minimal evidence corpus so a fresh environment can exercise retrieval
// and the citation gate end to end.
var seedDocuments = []seedDocument{
	{
		DocId:    "guideline_phq9",
		Title:    "PHQ-9 Administration Guideline",
		Category: "guideline",
		Content: "The PHQ-9 is a nine item depression screening instrument. Administer at intake " +
			"and at every follow-up visit. Scores of 10 or above warrant a structured clinical review. " +
			"Document the total score and any positive response to item nine separately.",
	},
	{
		DocId:    "protocol_crisis",
		Title:    "Crisis Response Protocol",
		Category: "protocol",
		Content: "When automated screening or clinician judgment indicates acute risk, initiate the " +
			"crisis response protocol immediately. Provide crisis line contacts, remain with the " +
			"person in the conversation, and page the on-call clinician. Document every step taken " +
			"with timestamps.",
	},
	{
		DocId:    "policy_documentation",
		Title:    "Clinical Documentation Policy",
		Category: "policy",
		Content: "All clinical case documents must ground their claims in approved reference " +
			"material. Drafts produced with automated assistance require clinician review and " +
			"signature before they are written back to the record system. Unsupported claims " +
			"must be removed or cited before sign-off.",
	},
	{
		DocId:    "guideline_sleep",
		Title:    "Sleep Hygiene Guidance",
		Category: "guideline",
		Content: "Sleep disturbance is a common presenting concern. Recommend consistent sleep and " +
			"wake times, limiting screen exposure before bed, and avoiding caffeine after midday. " +
			"Persistent insomnia beyond four weeks warrants structured assessment.",
	},
}

func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	var embedder embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embedder = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	color.Cyan("Seeding evidence corpus (%d documents)...", len(seedDocuments))
	for _, sd := range seedDocuments {
		doc := entity.Document{
			Id:        uuid.New(),
			DocId:     sd.DocId,
			Title:     sd.Title,
			Category:  sd.Category,
			Content:   sd.Content,
			Active:    true,
			CreatedAt: time.Now(),
		}

		vector, err := embedder.Embed(ctx, sd.Content)
		if err != nil {
			color.Yellow("  %s: embedding backend unavailable, stored without vector (%v)", sd.DocId, err)
		} else {
			doc.Embedding = vector
		}

		if err := uow.DocumentRepository().Upsert(ctx, &doc); err != nil {
			color.Red("  %s: FAILED (%v)", sd.DocId, err)
			continue
		}
		color.Green("  %s: ok (dims=%d)", sd.DocId, len(doc.Embedding))
	}

	seedClinician(ctx, uowFactory)
	color.Cyan("Seed complete.")
}

func seedClinician(ctx context.Context, uowFactory unitofwork.RepositoryFactory) {
	uow := uowFactory.NewUnitOfWork(ctx)

	email := "clinician@example.org"
	existing, err := uow.ClinicianRepository().FindOne(ctx, specification.Filter("email", email))
	if err != nil {
		color.Red("Clinician lookup failed: %v", err)
		return
	}
	if existing != nil {
		color.Yellow("Clinician %s already present, skipping", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme-on-first-login"), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Failed to hash password: %v", err)
		return
	}

	clinician := entity.Clinician{
		Id:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     "Demo Clinician",
		CreatedAt:    time.Now(),
	}
	if err := uow.ClinicianRepository().Create(ctx, &clinician); err != nil {
		color.Red("Failed to seed clinician: %v", err)
		return
	}
	color.Green("Seeded clinician %s", email)
}
