package domain

import "fmt"

// MaxRoutePoints is the largest number of pickup points the service routes
// in one request. Ten points is already 3.6M orderings.
const MaxRoutePoints = 10

// Mobile robot that executes pickup routes.
//
// MaxPickups caps the number of distinct pickup points planned for a
// single order, since the route search is factorial in that number.
// Zero disables the cap.
type Robot struct {
	RobotID    int
	Start      Point
	MaxPickups int
}

func NewRobot(id int, start Point, maxPickups int) *Robot {
	return &Robot{
		RobotID:    id,
		Start:      start,
		MaxPickups: maxPickups,
	}
}

// Check that the robot may plan a route through n pickup points.
func (r *Robot) CheckPickups(n int) error {
	if r.MaxPickups > 0 && n > r.MaxPickups {
		return fmt.Errorf("robot %d: %d pickups exceeds limit %d: %w", r.RobotID, n, r.MaxPickups, ErrTooManyPickups)
	}
	return nil
}
