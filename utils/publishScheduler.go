package utils

import (
	"fmt"
	"log"
	"time"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[PUBLISH-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializePublishScheduler starts the scheduled-publishing sweep
func InitializePublishScheduler() {
	logScheduler("Initializing publish scheduler...")

	c := cron.New()

	// Check for due courses every 5 minutes
	c.AddFunc("*/5 * * * *", func() {
		ProcessScheduledCourses()
	})

	c.Start()
	logScheduler("Publish scheduler started - runs every 5 minutes")
}

// ProcessScheduledCourses publishes draft courses whose publish_at has passed
func ProcessScheduledCourses() {
	db := database.Database.Db
	nowTime := time.Now()

	var dueCourses []courseModels.Course
	if err := db.
		Where("status = ? AND is_deleted = ? AND publish_at IS NOT NULL AND publish_at <= ?", courseModels.StatusDraft, false, nowTime).
		Find(&dueCourses).Error; err != nil {
		logScheduler("Error fetching scheduled courses: " + err.Error())
		return
	}

	if len(dueCourses) == 0 {
		return
	}

	logScheduler(fmt.Sprintf("Found %d scheduled courses due for publishing", len(dueCourses)))

	for i := range dueCourses {
		crs := &dueCourses[i]
		publishedAt := time.Now()
		crs.Status = courseModels.StatusPublished
		crs.PublishedAt = &publishedAt

		if err := db.Save(crs).Error; err != nil {
			log.Printf("[PUBLISH-SCHEDULER] Error publishing course %d: %v", crs.ID, err)
			continue
		}

		NotifyCoursePublished(crs)

		var teacher models.User
		if err := db.Where("id = ?", crs.TeacherID).First(&teacher).Error; err != nil {
			log.Printf("[PUBLISH-SCHEDULER] Error fetching teacher %d: %v", crs.TeacherID, err)
			continue
		}

		if err := SendCoursePublishedEmail(teacher.Email, teacher.FullName, crs.Title); err != nil {
			log.Printf("[PUBLISH-SCHEDULER] Error emailing teacher %d: %v", crs.TeacherID, err)
		}
	}

	logScheduler("Scheduled publish sweep completed")
}
