package memory

import (
	"context"

	"github.com/gracecommunity/churchhub/internal/domain/group"
)

// GroupsRepo serves the static community groups shown on the community page.
type GroupsRepo struct {
	groups []group.Group
}

func NewGroupsRepo() *GroupsRepo {
	return &GroupsRepo{
		groups: []group.Group{
			{
				ID:          "sunday-school",
				Name:        "Sunday School",
				Description: "Bible lessons and activities for children ages 4-12 during service time.",
				Leader:      "Mrs. Emily Davis",
				MeetingTime: "Sundays 9:00 AM",
				Location:    "Children's Ministry Room",
				Category:    "sunday_school",
			},
			{
				ID:          "youth-fellowship",
				Name:        "Youth Fellowship",
				Description: "Dynamic ministry for teens with games, discussions, and service projects.",
				Leader:      "Pastor Mike Wilson",
				MeetingTime: "Fridays 7:00 PM",
				Location:    "Youth Center",
				Category:    "youth",
			},
			{
				ID:          "women-fellowship",
				Name:        "Women Fellowship",
				Description: "Bible study, prayer, and fellowship for women of all ages and backgrounds.",
				Leader:      "Mrs. Linda Thompson",
				MeetingTime: "Wednesdays 10:00 AM",
				Location:    "Fellowship Hall",
				Category:    "women",
			},
			{
				ID:          "men-fellowship",
				Name:        "Men Fellowship",
				Description: "Brotherhood, accountability, and growth in faith through study and service.",
				Leader:      "Deacon Robert Brown",
				MeetingTime: "Saturdays 7:00 AM",
				Location:    "Conference Room",
				Category:    "men",
			},
		},
	}
}

func (r *GroupsRepo) List(_ context.Context) ([]group.Group, error) {
	out := make([]group.Group, len(r.groups))
	copy(out, r.groups)

	return out, nil
}
