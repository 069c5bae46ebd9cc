// internal/seed/seed.go
package seed

import (
	"context"
	"log"
	"time"

	"github.com/encikiz/planr-backend/internal/repository"
	"github.com/encikiz/planr-backend/internal/types"
	"golang.org/x/crypto/bcrypt"
)

// SeedData populates a development database with a small but realistic
// scenario: one team across two projects, with milestone-attached and
// unattached tasks in mixed states.
func SeedData(repos *repository.Repositories) {
	ctx := context.Background()

	// Skip when data already exists
	users, _ := repos.UserRepo.FindAll(ctx)
	if len(users) > 0 {
		log.Println("[Seed] Data already exists, skipping...")
		return
	}

	log.Println("[Seed] 🌱 Creating initial data...")

	// ============================================
	// CREATE USERS
	// ============================================
	password, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	hash := string(password)

	hafiz := &repository.User{
		Name:         "Hafiz Rahman",
		Email:        stringPtr("hafiz@planr.dev"),
		PasswordHash: &hash,
		Role:         "admin",
		Department:   stringPtr("Engineering"),
	}
	repos.UserRepo.Create(ctx, hafiz)

	aina := &repository.User{
		Name:         "Aina Zulkifli",
		Email:        stringPtr("aina@planr.dev"),
		PasswordHash: &hash,
		Role:         "member",
		Department:   stringPtr("Engineering"),
	}
	repos.UserRepo.Create(ctx, aina)

	daniel := &repository.User{
		Name:         "Daniel Wong",
		Email:        stringPtr("daniel@planr.dev"),
		PasswordHash: &hash,
		Role:         "member",
		Department:   stringPtr("Design"),
	}
	repos.UserRepo.Create(ctx, daniel)

	log.Printf("✅ Created 3 users: Hafiz (admin), Aina, Daniel")

	// ============================================
	// CREATE PROJECTS
	// ============================================
	now := time.Now()
	in30 := now.AddDate(0, 1, 0)
	in90 := now.AddDate(0, 3, 0)

	legacyOne := 1
	website := &repository.Project{
		LegacyID:    &legacyOne,
		Name:        "Website Redesign",
		Description: stringPtr("Company website overhaul with new branding"),
		Status:      types.StatusInProgress,
		Priority:    types.PriorityHigh,
		TeamMembers: []string{hafiz.ID, aina.ID, daniel.ID},
		StartDate:   &now,
		EndDate:     &in90,
		CreatedBy:   &hafiz.ID,
	}
	repos.ProjectRepo.Create(ctx, website)

	legacyTwo := 2
	mobile := &repository.Project{
		LegacyID:    &legacyTwo,
		Name:        "Mobile App MVP",
		Description: stringPtr("First release of the companion mobile app"),
		Status:      types.StatusPlanning,
		Priority:    types.PriorityMedium,
		TeamMembers: []string{hafiz.ID, aina.ID},
		StartDate:   &in30,
		CreatedBy:   &hafiz.ID,
	}
	repos.ProjectRepo.Create(ctx, mobile)

	log.Printf("✅ Created 2 projects: Website Redesign, Mobile App MVP")

	// ============================================
	// CREATE MILESTONES
	// ============================================
	designDone := &repository.Milestone{
		ProjectID:    website.ID,
		Name:         "Design Approved",
		Description:  stringPtr("All page designs signed off by stakeholders"),
		Status:       types.StatusInProgress,
		Deliverables: []string{"Style guide", "Page mockups", "Component library"},
		DueDate:      &in30,
		CreatedBy:    &hafiz.ID,
	}
	repos.MilestoneRepo.Create(ctx, designDone)

	launch := &repository.Milestone{
		ProjectID:    website.ID,
		Name:         "Public Launch",
		Status:       types.StatusNotStarted,
		Deliverables: []string{"Production deploy", "Announcement post"},
		DueDate:      &in90,
		CreatedBy:    &hafiz.ID,
	}
	repos.MilestoneRepo.Create(ctx, launch)

	// ============================================
	// CREATE TASKS
	// ============================================
	tasks := []*repository.Task{
		{
			ProjectID:   website.ID,
			MilestoneID: &designDone.ID,
			Name:        "Draft homepage mockup",
			AssignedTo:  []string{daniel.ID},
			Status:      types.StatusCompleted,
			Progress:    100,
			Priority:    types.PriorityHigh,
			DueDate:     &in30,
			CreatedBy:   &hafiz.ID,
		},
		{
			ProjectID:   website.ID,
			MilestoneID: &designDone.ID,
			Name:        "Build component library",
			AssignedTo:  []string{aina.ID},
			Status:      types.StatusInProgress,
			Progress:    40,
			Priority:    types.PriorityMedium,
			DueDate:     &in30,
			CreatedBy:   &hafiz.ID,
		},
		{
			ProjectID:  website.ID,
			Name:       "Set up staging environment",
			AssignedTo: []string{hafiz.ID},
			Status:     types.StatusNotStarted,
			Priority:   types.PriorityLow,
			CreatedBy:  &hafiz.ID,
		},
		{
			ProjectID:  mobile.ID,
			Name:       "Evaluate app frameworks",
			AssignedTo: []string{aina.ID},
			Status:     types.StatusNotStarted,
			Priority:   types.PriorityMedium,
			CreatedBy:  &hafiz.ID,
		},
	}
	for _, t := range tasks {
		repos.TaskRepo.Create(ctx, t)
	}

	log.Printf("✅ Created %d tasks", len(tasks))

	// ============================================
	// CREATE TEAM
	// ============================================
	team := &repository.Team{
		Name:        "Product Squad",
		Description: stringPtr("Cross-functional team for product work"),
		TeamLeader:  &hafiz.ID,
		Projects:    []string{website.ID, mobile.ID},
		CreatedBy:   &hafiz.ID,
	}
	repos.TeamRepo.Create(ctx, team)

	repos.TeamRepo.AddMember(ctx, &repository.TeamMember{TeamID: team.ID, UserID: hafiz.ID, Role: types.RoleLeader})
	repos.TeamRepo.AddMember(ctx, &repository.TeamMember{TeamID: team.ID, UserID: aina.ID, Role: types.RoleMember})
	repos.TeamRepo.AddMember(ctx, &repository.TeamMember{TeamID: team.ID, UserID: daniel.ID, Role: types.RoleMember})

	log.Printf("✅ Created team: Product Squad (3 members)")
	log.Println("[Seed] 🌱 Done")
}

func stringPtr(s string) *string {
	return &s
}
