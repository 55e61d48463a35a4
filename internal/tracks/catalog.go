// Package tracks holds the static task catalog: what each development track
// asks applicants to build. Pure lookup, no persistence.
package tracks

// Resource is a linked reference for a task.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Requirement is one deliverable of a track task.
type Requirement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Task describes the full assignment for one track.
type Task struct {
	Track        string        `json:"track"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Requirements []Requirement `json:"requirements"`
	Guidelines   []string      `json:"guidelines"`
	TechStack    []string      `json:"techStack"`
	Resources    []Resource    `json:"resources"`
}

var catalog = map[string]Task{
	"web": {
		Track:       "web",
		Title:       "Web Development Task",
		Description: "Build a web app for SDC to collect registration forms",
		Requirements: []Requirement{
			{Title: "Registration Form", Description: "A clean and functional registration form", Status: "required"},
			{Title: "Backend Integration", Description: "A working backend (Node.js, Firebase, or your preferred choice)", Status: "required"},
			{Title: "Timeline Section", Description: "A timeline section showing the steps/process of registration", Status: "required"},
		},
		Guidelines: []string{
			"Use modern web technologies (React, Vue, Angular, etc.)",
			"Ensure responsive design for mobile and desktop",
			"Implement proper form validation",
			"Include error handling and user feedback",
			"Follow SDC design guidelines and branding",
			"Deploy to a hosting platform (Vercel, Netlify, etc.)",
		},
		TechStack: []string{"React/Vue/Angular", "Node.js/Firebase", "HTML/CSS/JavaScript", "Git"},
		Resources: []Resource{
			{Name: "React Documentation", URL: "https://react.dev/"},
			{Name: "Firebase Documentation", URL: "https://firebase.google.com/docs"},
			{Name: "Vercel Deployment", URL: "https://vercel.com/docs"},
		},
	},
	"android": {
		Track:       "android",
		Title:       "Android Development Task",
		Description: "Develop an Android app for SDC to accept registrations",
		Requirements: []Requirement{
			{Title: "Registration Form", Description: "A user-friendly registration form", Status: "required"},
			{Title: "Backend Integration", Description: "Backend integration to store form data", Status: "required"},
			{Title: "Timeline Section", Description: "A timeline section explaining stages of registration", Status: "required"},
		},
		Guidelines: []string{
			"Use modern Android development practices",
			"Implement Material Design principles",
			"Ensure compatibility with different Android versions",
			"Include proper error handling and user feedback",
			"Follow Android development best practices",
			"Test on multiple device sizes and orientations",
		},
		TechStack: []string{"Kotlin/Java", "Android Studio", "Firebase/API", "Git"},
		Resources: []Resource{
			{Name: "Android Developer Guide", URL: "https://developer.android.com/guide"},
			{Name: "Material Design", URL: "https://material.io/design"},
			{Name: "Firebase for Android", URL: "https://firebase.google.com/docs/android"},
		},
	},
	"ml": {
		Track:       "ml",
		Title:       "Machine Learning Task",
		Description: "Develop an ML-powered application for SDC",
		Requirements: []Requirement{
			{Title: "Registration Form", Description: "A user-friendly registration form with ML features", Status: "required"},
			{Title: "Backend Integration", Description: "Backend integration with ML model deployment", Status: "required"},
			{Title: "Timeline Section", Description: "A timeline section explaining ML pipeline stages", Status: "required"},
		},
		Guidelines: []string{
			"Implement ML features (recommendations, predictions, etc.)",
			"Use popular ML frameworks (TensorFlow, PyTorch, scikit-learn)",
			"Include data preprocessing and model training",
			"Deploy ML model to cloud platform",
			"Implement proper error handling and validation",
			"Document your ML pipeline and methodology",
		},
		TechStack: []string{"Python", "TensorFlow/PyTorch", "Flask/FastAPI", "Docker"},
		Resources: []Resource{
			{Name: "TensorFlow Tutorials", URL: "https://www.tensorflow.org/tutorials"},
			{Name: "PyTorch Documentation", URL: "https://pytorch.org/docs/"},
			{Name: "FastAPI Guide", URL: "https://fastapi.tiangolo.com/"},
		},
	},
	"game": {
		Track:       "game",
		Title:       "Game Development Task",
		Description: "Build a fun interactive game for SDC",
		Requirements: []Requirement{
			{Title: "Game Concept", Description: "Choose from: Tic Tac Toe, Ping Pong, or your own idea", Status: "required"},
			{Title: "Interactive Features", Description: "Implement core game mechanics and user interaction", Status: "required"},
			{Title: "SDC Integration", Description: "Include SDC branding and follow guidelines", Status: "required"},
		},
		Guidelines: []string{
			"Use any framework you're comfortable with (Pygame, Unity, JavaScript, etc.)",
			"Ensure smooth gameplay and responsive controls",
			"Include proper game states (menu, playing, game over)",
			"Implement score tracking or progress system",
			"Follow SDC design guidelines and branding",
			"Make it engaging and fun to play",
		},
		TechStack: []string{"Unity/Unreal", "Pygame", "JavaScript/HTML5", "Git"},
		Resources: []Resource{
			{Name: "Unity Learn", URL: "https://learn.unity.com/"},
			{Name: "Pygame Documentation", URL: "https://www.pygame.org/docs/"},
			{Name: "HTML5 Game Dev", URL: "https://developer.mozilla.org/en-US/docs/Games"},
		},
	},
}

// Lookup returns the task for a track. ok is false for an unknown or unset
// track, which callers render as the empty state.
func Lookup(track string) (Task, bool) {
	t, ok := catalog[track]
	return t, ok
}

// All returns every track task in display order.
func All() []Task {
	order := []string{"android", "web", "ml", "game"}
	out := make([]Task, 0, len(order))
	for _, k := range order {
		out = append(out, catalog[k])
	}
	return out
}
