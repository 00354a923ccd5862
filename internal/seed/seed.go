package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
	DryRun      bool
	MaxDays     int
}

var (
	hashtagPool = []string{
		"golang", "programming", "linux", "frontend", "backend", "devops",
		"cloud", "ai", "startups", "homelab", "art", "history", "philosophy",
		"science", "fitness", "food", "travel", "music", "movies", "gaming",
		"books", "photography", "running", "cycling", "coffee",
	}

	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
		"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
		"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
		"Kenneth", "Dorothy", "Kevin", "Carol", "Brian", "Amanda", "George", "Melissa",
		"Edward", "Deborah", "Ronald", "Stephanie", "Timothy", "Rebecca", "Jason", "Sharon",
		"Jeffrey", "Laura", "Ryan", "Cynthia", "Jacob", "Kathleen", "Gary", "Amy",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
		"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
		"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
		"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	}

	adjectives = []string{
		"amazing", "incredible", "fascinating", "challenging", "excited", "happy", "proud",
		"grateful", "inspired", "motivated", "curious", "passionate", "creative", "innovative",
		"collaborative", "productive", "efficient", "effective", "powerful", "simple", "complex",
		"beautiful", "elegant", "robust", "scalable", "secure", "fast", "reliable", "dynamic",
	}

	nouns = []string{
		"project", "team", "community", "code", "design", "architecture", "system", "app",
		"website", "platform", "framework", "library", "tool", "solution", "idea", "concept",
		"challenge", "opportunity", "goal", "dream", "journey", "experience", "lesson", "skill",
	}

	verbs = []string{
		"built", "created", "designed", "developed", "launched", "deployed", "shipped",
		"fixed", "solved", "learned", "discovered", "explored", "mastered", "shared",
		"improved", "optimized", "refactored", "debugged", "tested", "validated",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	// Clear existing data to avoid conflicts if requested
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers, opts.SkipBcrypt)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	edges, err := createFollowMesh(db, users)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("✓ %d follow edges created", edges)

	posts, err := createPosts(db, users, opts.NumPosts, opts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	likes, err := createLikes(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}
	log.Printf("✓ %d likes created", likes)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE likes, post_hashtags, posts, hashtags, follow_edges, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func generateRandomName() (string, string) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	first := firstNames[r.Intn(len(firstNames))]
	last := lastNames[r.Intn(len(lastNames))]
	return first, last
}

func generateUsername(first, last string) string {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	formats := []string{"%s%s", "%s.%s", "%s_%s"}
	format := formats[r.Intn(len(formats))]
	return strings.ToLower(fmt.Sprintf(format, first, last))
}

func generateSentence() string {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	adj := adjectives[r.Intn(len(adjectives))]
	noun := nouns[r.Intn(len(nouns))]
	verb := verbs[r.Intn(len(verbs))]

	templates := []string{
		"Just %s an %s %s.",
		"The %s %s was %s.",
		"I %s this %s %s!",
		"What an %s %s to %s.",
		"Time to %s the %s %s.",
	}

	template := templates[r.Intn(len(templates))]
	return fmt.Sprintf(template, verb, adj, noun)
}

func generateParagraph(sentences int) string {
	var sb strings.Builder
	for i := 0; i < sentences; i++ {
		sb.WriteString(generateSentence())
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}

func createUsers(db *gorm.DB, count int, skipBcrypt bool) ([]models.User, error) {
	users := make([]models.User, 0, count)

	password := "password123"
	if !skipBcrypt {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		password = string(hashed)
	}

	// Always include some specific users for consistency if cleaning
	if count >= 3 {
		baseUsers := []string{"admin", "demo", "test"}
		for i, u := range baseUsers {
			username := u
			user := models.User{
				Email:        fmt.Sprintf("%s@example.com", u),
				Username:     &username,
				Password:     password,
				Bio:          "One of the OGs.",
				ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", u),
				IsStaff:      i == 0,
				IsSuperuser:  i == 0,
			}
			if err := db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		first, last := generateRandomName()
		username := generateUsername(first, last)

		// Ensure uniqueness roughly
		username = fmt.Sprintf("%s%d", username, i)

		user := models.User{
			Email:        fmt.Sprintf("%s@example.com", username),
			Username:     &username,
			Password:     password,
			Bio:          generateSentence(),
			ProfileImage: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to create user %s: %v", username, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh gives every user a handful of random followings so feeds
// and follower listings have something to show.
func createFollowMesh(db *gorm.DB, users []models.User) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	factory := &Factory{db: db}

	created := 0
	for i := range users {
		targets := r.Intn(5) + 1
		for j := 0; j < targets; j++ {
			other := &users[r.Intn(len(users))]
			if other.ID == users[i].ID {
				continue
			}
			if err := factory.CreateFollow(&users[i], other); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func createPosts(db *gorm.DB, users []models.User, count int, opts Options) ([]models.Post, error) {
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	factory := NewFactory(db, opts)
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		author := &users[r.Intn(len(users))]

		numTags := r.Intn(4)
		tags := make([]string, 0, numTags)
		for j := 0; j < numTags; j++ {
			tags = append(tags, hashtagPool[r.Intn(len(hashtagPool))])
		}

		contentLen := r.Intn(5) + 1
		post, err := factory.CreatePost(author, tags, func(p *models.Post) {
			p.Content = generateParagraph(contentLen)
		})
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}

	return posts, nil
}

func createLikes(db *gorm.DB, users []models.User, posts []models.Post) (int, error) {
	if len(users) == 0 || len(posts) == 0 {
		return 0, nil
	}

	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	factory := &Factory{db: db}

	created := 0
	for i := range posts {
		likers := r.Intn(len(users))
		if likers > 10 {
			likers = 10
		}
		for j := 0; j < likers; j++ {
			if err := factory.CreateLike(&users[r.Intn(len(users))], &posts[i]); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
