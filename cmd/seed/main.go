package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/model"
	"surveypulse/internal/repository"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	database := os.Getenv("MONGO_DATABASE")
	if database == "" {
		database = "surveypulse"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	ownerID := os.Getenv("SEED_OWNER_ID")
	if ownerID == "" {
		ownerID = uuid.NewString()
	}

	satisfactionID := uuid.NewString()
	featureID := uuid.NewString()
	npsID := uuid.NewString()
	feedbackID := uuid.NewString()

	survey := &model.Survey{
		OwnerID:     ownerID,
		Title:       "Product Satisfaction Survey",
		Description: "Quarterly check-in on how the product is landing with users.",
		Status:      model.StatusActive,
		Visibility:  model.VisibilityPublic,
		StartAt:     time.Now().AddDate(0, 0, -20),
		Options: model.SurveyOptions{
			IsAnonymous:     true,
			ShowProgressBar: true,
			ThankYouMessage: "Thank you for your response!",
		},
		Questions: []model.Question{
			{
				ID:         satisfactionID,
				Title:      "How satisfied are you with the product overall?",
				FieldType:  model.FieldRating,
				IsRequired: true,
				Order:      1,
				ScaleMin:   1,
				ScaleMax:   5,
			},
			{
				ID:         featureID,
				Title:      "Which features do you use regularly?",
				FieldType:  model.FieldMultiChoice,
				IsRequired: true,
				Order:      2,
				Options: []model.Option{
					{Value: "dashboards", Label: "Dashboards"},
					{Value: "exports", Label: "Exports"},
					{Value: "alerts", Label: "Alerts"},
					{Value: "api", Label: "API"},
				},
			},
			{
				ID:         npsID,
				Title:      "How many colleagues have you recommended us to?",
				FieldType:  model.FieldNumber,
				IsRequired: false,
				Order:      3,
			},
			{
				ID:         feedbackID,
				Title:      "What would you improve?",
				FieldType:  model.FieldLongText,
				IsRequired: false,
				Order:      4,
			},
		},
	}

	surveyID, err := surveyRepo.Create(ctx, survey)
	if err != nil {
		log.Fatalf("Failed to seed survey: %v", err)
	}

	features := []string{"dashboards", "exports", "alerts", "api"}
	comments := []string{
		"More export formats would help our reporting team",
		"Faster dashboards please",
		"Love the alerts, keep improving the api docs",
		"The onboarding flow could be smoother",
	}

	total := 25
	for i := 0; i < total; i++ {
		submitted := time.Now().AddDate(0, 0, -rand.Intn(20))
		started := submitted.Add(-time.Duration(60+rand.Intn(300)) * time.Second)

		rating := float64(1 + rand.Intn(5))
		answers := []model.Answer{
			{QuestionID: satisfactionID, Number: &rating},
			{QuestionID: featureID, Selected: features[:1+rand.Intn(len(features))]},
		}

		complete := i%5 != 0 // every fifth respondent drops out early
		if complete {
			recommended := float64(rand.Intn(10))
			answers = append(answers,
				model.Answer{QuestionID: npsID, Number: &recommended},
				model.Answer{QuestionID: feedbackID, Text: comments[i%len(comments)]},
			)
		}

		response := &model.SurveyResponse{
			SurveyID:    surveyID,
			StartedAt:   started,
			SubmittedAt: submitted,
			IsComplete:  complete,
			Answers:     answers,
		}
		if _, err := responseRepo.Create(ctx, response); err != nil {
			log.Fatalf("Failed to seed response %d: %v", i, err)
		}
	}

	fmt.Printf("Seeded survey %s with %d responses (owner %s)\n", surveyID, total, ownerID)
}
