package domain

type UserID string
type RecordID string

type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Week is the canonical Monday-first ordering used everywhere a full
// week is iterated. Aggregation, load calculation and prompts all rely
// on this order being stable.
var Week = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
	StatusSkipped   TaskStatus = "skipped"
)

type Mood string

const (
	MoodNormal    Mood = "normal"
	MoodTired     Mood = "tired"
	MoodStressed  Mood = "stressed"
	MoodEnergized Mood = "energized"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Severity classifies how strongly the overthinking guard reacted.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
	SeverityInactive Severity = "inactive"
)
