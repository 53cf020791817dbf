package model

// LogID identifies an exercise log row.
type LogID int64

// CategoryID identifies a workout category row.
type CategoryID int64

// GoalID identifies a workout goal row.
type GoalID int64

// SpecialCharacters is the set a password must draw at least one character from.
const SpecialCharacters = `!@#$%^&*()-_+=<>,.?/:;{}[]|\~`

// User is an account. Credentials are stored exactly as entered.
type User struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// ExerciseLog records one exercise performed by its owner.
//
// Date is free text supplied by the user; no calendar validation is applied.
type ExerciseLog struct {
	ID           LogID   `json:"log_id"`
	Username     string  `json:"username"`
	ExerciseName string  `json:"exercise_name"`
	Date         string  `json:"date"`
	Duration     int64   `json:"duration"`
	Sets         int64   `json:"sets"`
	Reps         int64   `json:"reps"`
	Weight       float64 `json:"weight"`
	Notes        string  `json:"notes,omitempty"`
	Completed    bool    `json:"completed"`
}

// WorkoutCategory is a globally shared, named category.
type WorkoutCategory struct {
	ID   CategoryID `json:"category_id"`
	Name string     `json:"category_name"`
}

// WorkoutGoal is a goal owned by a user. Progress is a percentage by
// convention but its range is not enforced.
type WorkoutGoal struct {
	ID       GoalID  `json:"goal_id"`
	Username string  `json:"username"`
	Name     string  `json:"goal_name"`
	Progress float64 `json:"progress"`
}

// GoalProgress is the (name, progress) projection reported by progress views.
type GoalProgress struct {
	Name     string  `json:"goal_name"`
	Progress float64 `json:"progress"`
}
