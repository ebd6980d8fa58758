package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"taskflow/internal/adapter/http/dto"
	"taskflow/internal/core/domain"
)

var (
	ErrInvalidTaskPayload = errors.New("invalid task payload")
	ErrInvalidTargetDate  = errors.New("invalid target date")
)

func BuildCreateTaskInput(req dto.CreateTaskRequest) (domain.CreateTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := time.Parse(domain.DateLayout, req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.CreateTaskInput{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     dueDate,
		AssigneeIDs: uniqueIDs(req.AssignedUsers),
	}, nil
}

func BuildSelfTaskInput(req dto.SelfTaskRequest) (domain.SelfTaskInput, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.SelfTaskInput{}, ErrInvalidTaskPayload
	}

	dueDate, err := time.Parse(domain.DateLayout, req.DueDate)
	if err != nil {
		return domain.SelfTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.SelfTaskInput{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		DueDate:     dueDate,
	}, nil
}

// BuildStatusUpdateInput treats an explicit "details": null the same as an
// absent field: the stored details are cleared.
func BuildStatusUpdateInput(req dto.StatusUpdateRequest, raw map[string]json.RawMessage) (domain.StatusUpdateInput, error) {
	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		return domain.StatusUpdateInput{}, err
	}

	if hasJSONField(raw, "details") && !isJSONNull(raw["details"]) && req.Details == nil {
		return domain.StatusUpdateInput{}, ErrInvalidTaskPayload
	}

	var details *string
	if req.Details != nil {
		value := strings.TrimSpace(*req.Details)
		details = &value
	}

	return domain.StatusUpdateInput{Status: status, Details: details}, nil
}

func BuildReviewInput(req dto.ReviewRequest, raw map[string]json.RawMessage) (domain.ReviewInput, error) {
	if !hasJSONField(raw, "rating") || isJSONNull(raw["rating"]) || req.Rating == nil {
		return domain.ReviewInput{}, ErrInvalidTaskPayload
	}

	return domain.ReviewInput{
		Rating:   *req.Rating,
		Comments: strings.TrimSpace(req.Comments),
	}, nil
}

// ParseTargetDate defaults to the calendar day of now when value is empty.
func ParseTargetDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return domain.Day(now), nil
	}

	date, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, ErrInvalidTargetDate
	}
	return date, nil
}

func DecodeRaw(body []byte) (map[string]json.RawMessage, error) {
	raw := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(body)) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
