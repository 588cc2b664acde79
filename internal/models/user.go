package models

import "time"

type ExamType string

const (
	ExamJEE      ExamType = "JEE"
	ExamNEET     ExamType = "NEET"
	ExamOlympiad ExamType = "OLYMPIAD"
)

type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectMaths     Subject = "Maths"
	SubjectBiology   Subject = "Biology"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type User struct {
	ID         string   `bson:"_id,omitempty" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Email      string   `bson:"email" json:"email"`
	TargetExam ExamType `bson:"target_exam" json:"targetExam"`
	AvatarURL  string   `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
