package utils

import (
	"log"

	"lms/config"
	courseModels "lms/models/course"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// NotifyCoursePublished posts a publish event to the configured webhook URL.
// A missing URL disables the notification.
func NotifyCoursePublished(course *courseModels.Course) {
	url := config.AppConfig.PublishWebhookURL
	if url == "" {
		return
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":      "course.published",
			"event_id":   uuid.NewString(), // lets receivers deduplicate deliveries
			"course_id":  course.ID,
			"title":      course.Title,
			"teacher_id": course.TeacherID,
		}).
		Post(url)
	if err != nil {
		log.Printf("Error calling publish webhook: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Publish webhook returned status %d: %s", resp.StatusCode(), resp.String())
	}
}
