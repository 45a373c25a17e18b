package db

import "time"

// Client is a hiring client company. Names are unique.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Job is an open position owned by a client. Deleting a job cascades to
// its skills, functions and profile rows.
type Job struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	ClientID int64  `json:"client_id"`
}

// Skill is a single required skill for a job.
type Skill struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	JobID int64  `json:"job_id"`
}

// Function is one responsibility of a job.
type Function struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	JobID int64  `json:"job_id"`
}

// Profile is the free-text description of the worker a job requires.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	JobID int64  `json:"job_id"`
}

// Level is an education/experience level lookup row.
type Level struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Candidate is one application user, keyed to the external identity
// provider through ExternalUserID.
type Candidate struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"firstname"`
	LastName       string    `json:"lastname"`
	Birthday       time.Time `json:"birthday"`
	Country        string    `json:"country"`
	LevelID        int64     `json:"level_id"`
	ExternalUserID string    `json:"external_user_id"`
}

// Analysis is the persisted result of one resume evaluation. Rows are
// write-once.
type Analysis struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	JobTitle   string    `json:"job_title"`
	MatchScore float64   `json:"match_score"`
	Feedback   string    `json:"feedback"`
	Decision   string    `json:"decision"`
	FileName   string    `json:"file_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Usage tracks metered endpoint consumption for one candidate.
type Usage struct {
	ID          int64 `json:"id"`
	CandidateID int64 `json:"candidate_id"`
	UsageCount  int   `json:"usage_count"`
	UsageLimit  int   `json:"usage_limit"`
}

// Contact is an inbound contact-form submission.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
