package api

import (
	"context"
	"net/url"

	"github.com/alomac6/mavpulse/internal/models"
)

// Departments lists all departments.
func (c *Client) Departments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	if err := c.do(ctx, "GET", "/courses/", nil, &departments); err != nil {
		return nil, err
	}
	return departments, nil
}

// Courses lists the courses of a department.
func (c *Client) Courses(ctx context.Context, department string) ([]models.Course, error) {
	var courses []models.Course
	if err := c.do(ctx, "GET", "/courses/"+url.PathEscape(department), nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
