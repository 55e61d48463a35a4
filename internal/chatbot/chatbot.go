// Package chatbot answers recruitment questions. Known topics are resolved
// by an ordered decision table over the club knowledge base; only unmatched
// messages fall through to the generative model.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"clubreg/internal/genai"
)

// Club knowledge base, shared by the canned replies and the model prompt.
const (
	ClubName      = "Software Development Club (SDC)"
	ClubPresident = "Heerath Bhat"
	ClubEmail     = "sdcmvjce@gmail.com"

	RegistrationSteps = "1. Create account with student details\n" +
		"2. Select development track (Android/Web/ML/Game Dev)\n" +
		"3. Complete assigned tasks for chosen track\n" +
		"4. Submit GitHub project link and description\n" +
		"5. Track progress through timeline"

	TrackSummary = "• ANDROID: Android Development - Mobile app development using Android Studio, Kotlin/Java\n" +
		"• WEB: Web Development - Full-stack web applications using React, Node.js, Firebase\n" +
		"• ML: Machine Learning - AI/ML projects, data analysis, model development\n" +
		"• GAME: Game Development - Game creation using Unity, Pygame, or other frameworks"

	SubmissionLimit = "Users can submit their project ONLY ONCE per account"
	TrackLock       = "Track selection becomes LOCKED after project submission and cannot be changed"
)

// rule is one entry of the decision table: if any keyword appears in the
// lowercased message, reply wins. Order matters; first match is returned.
type rule struct {
	keywords []string
	reply    string
}

var rules = []rule{
	{
		keywords: []string{"register", "sign up", "join"},
		reply: "To register for SDC:\n\n" + RegistrationSteps + "\n\nYou can start by clicking the " +
			"\"Get Started\" button on the homepage or visiting the registration page. The process is " +
			"simple and takes just a few minutes!",
	},
	{
		keywords: []string{"change track", "switch track", "track change"},
		reply: "Track Change Policy:\n\n" + TrackLock + "\n\nThis means:\n" +
			"• Choose your track carefully before submission\n" +
			"• You can change tracks multiple times BEFORE submitting\n" +
			"• Once you submit your project, your track is permanently locked\n" +
			"• For questions about track selection, ask before submitting!",
	},
	{
		keywords: []string{"track", "development", "android", "web", "ml", "game"},
		reply: "SDC offers 4 development tracks:\n\n" + TrackSummary + "\n\nEach track has specific " +
			"tasks and requirements. You can choose the one that best matches your interests and skills!",
	},
	{
		keywords: []string{"task", "requirement", "project"},
		reply: "Each development track has specific requirements:\n\n" +
			"• Registration Form: Clean and functional form\n" +
			"• Backend Integration: Working backend (Node.js, Firebase, etc.)\n" +
			"• Timeline Section: Progress tracking timeline\n" +
			"• Project Submission: GitHub link and live demo\n\n" +
			"Tasks vary by track - check the Tasks page for detailed requirements!",
	},
	{
		keywords: []string{"role", "position", "team"},
		reply: "SDC has 4 main team roles:\n\n" +
			"• Tech: Tech Team Member - Development, coding, technical projects\n" +
			"• Design: Design Team Member - UI/UX, graphics, visual design\n" +
			"• Social: Social Media Team Member - Content creation, social media management\n" +
			"• Content: Content Team Member - Writing, documentation, communication\n\n" +
			"All roles are currently open for recruitment. You can apply for multiple roles based on your interests!",
	},
	{
		keywords: []string{"workflow", "process", "how to"},
		reply: "Here's the complete SDC application workflow:\n\n" + RegistrationSteps + "\n\n" +
			"After registration, you'll have access to:\n" +
			"• Dashboard: Track your progress\n" +
			"• Timeline: View milestones\n" +
			"• Tasks: Complete track-specific requirements\n" +
			"• Profile: Manage your information\n\nNeed help with any step?",
	},
	{
		keywords: []string{"president", "leader", "contact"},
		reply: "SDC President: " + ClubPresident + "\n\nFor general inquiries, you can:\n" +
			"• Use this chatbot for quick questions\n" +
			"• Fill out the Contact Us form\n" +
			"• Email: " + ClubEmail + "\n\nWe're here to help!",
	},
	{
		keywords: []string{"hackathon", "workshop", "event"},
		reply: "SDC conducts various activities:\n\n" +
			"• Regular workshops and coding sessions\n" +
			"• Monthly hackathons and innovation challenges\n" +
			"• Coding competitions and skill showcases\n" +
			"• Startup incubation and project development\n" +
			"• Regional and national level competitions\n\n" +
			"These events help members develop skills, network with peers, and showcase their talents!",
	},
	{
		keywords: []string{"deadline", "when", "time"},
		reply: "SDC recruitment is currently ongoing with no strict deadline. However, we recommend " +
			"completing your application and tasks as soon as possible to:\n\n" +
			"• Secure your preferred role\n" +
			"• Have time for project development\n" +
			"• Participate in upcoming events\n" +
			"• Get early feedback on your work",
	},
	{
		keywords: []string{"submit", "submission", "github"},
		reply: "Project Submission Rules:\n\n" + SubmissionLimit + "\n" + TrackLock + "\n\n" +
			"Project submission requires:\n• GitHub repository link\n• Project description\n" +
			"• Optional live demo URL\n\nAfter submission, users cannot modify their project details. " +
			"For changes or questions, use the Contact Us form.\n\n" +
			"All submissions are reviewed by the admin team and marked as reviewed/graded.",
	},
	{
		keywords: []string{"how many", "times", "limit"},
		reply: "Submission Limits:\n\n" + SubmissionLimit + "\n\nKey Points:\n" +
			"• One project submission per user account\n" +
			"• Track selection locked after submission\n" +
			"• No modifications allowed after submission\n" +
			"• Contact form available for questions/changes\n" +
			"• All submissions reviewed by admin team",
	},
	{
		keywords: []string{"help", "support", "assist"},
		reply: "I'm here to help! I can assist with:\n\n" +
			"• Registration process and workflow\n" +
			"• Development track information\n" +
			"• Task requirements and submission\n" +
			"• Club activities and events\n" +
			"• Role descriptions and responsibilities\n" +
			"• Submission rules and limits\n" +
			"• Track change policies\n" +
			"• General SDC information\n\nWhat specific information do you need?",
	},
}

// Bot resolves messages against the decision table, falling back to the
// generative model for anything the table cannot answer.
type Bot struct {
	model *genai.Client
}

// New creates a bot. model may be unconfigured; the bot then answers with a
// static fallback for unmatched messages.
func New(model *genai.Client) *Bot {
	return &Bot{model: model}
}

// fallbackReply covers unmatched messages when no model is reachable.
func fallbackReply(message string) string {
	return fmt.Sprintf("I understand you're asking about %q. While I'm specifically trained on SDC "+
		"recruitment and application processes, I can help you with:\n\n"+
		"• Registration workflow and requirements\n"+
		"• Development track selection\n"+
		"• Task completion guidelines\n"+
		"• Project submission rules and limits\n"+
		"• Track change policies\n"+
		"• Club activities and roles\n"+
		"• General SDC information\n\n"+
		"For specific technical questions or complex inquiries, please use the Contact Us form, and "+
		"our team will get back to you within 24-48 hours.", message)
}

// prompt wraps a message in the club knowledge block for the model.
func prompt(message string) string {
	return fmt.Sprintf(`You are an AI assistant for the Software Development Club (SDC) recruitment.

Key Information:
- Current recruitment status: ongoing
- Available roles: Tech team member, Design team member, Social media team member, Content team member
- President: %s
- Full name: Software Development Club
- The club focuses on software development, programming, and technology education
- We welcome students from all departments and years
- Regular workshops, hackathons, and coding sessions are conducted

Please respond to the following query about SDC recruitment in a helpful and friendly manner: %s

If the query is outside your scope or you cannot answer it, politely inform the user and suggest
they use the Contact Us form for more specific inquiries.

Keep responses concise but informative, and maintain an enthusiastic tone about the club.`, ClubPresident, message)
}

// Respond answers one message. Table matches never touch the network.
func (b *Bot) Respond(ctx context.Context, message string) (string, error) {
	lowered := strings.ToLower(message)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.reply, nil
			}
		}
	}

	if b.model == nil || !b.model.Configured() {
		return fallbackReply(message), nil
	}

	text, err := b.model.GenerateContent(ctx, prompt(message))
	if err != nil {
		logrus.Errorf("chatbot model call failed: %v", err)
		return "", err
	}
	return text, nil
}
