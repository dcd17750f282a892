// Package content 行銷頁面使用的固定內容，全部唯讀。
package content

import (
	"slices"
	"sort"
)

type Service struct {
	ID          string `json:"id"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProcessStep struct {
	Step        int    `json:"step"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar"`
}

type Statistic struct {
	ID          string  `json:"id"`
	Name        string  `json:"statisticName"`
	Value       float64 `json:"statisticValue"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
}

type Testimonial struct {
	ID            string `json:"id"`
	Text          string `json:"testimonialText"`
	ClientName    string `json:"clientName"`
	ClientRole    string `json:"clientRole"`
	ClientCompany string `json:"clientCompany"`
	ClientAvatar  string `json:"clientAvatar"`
}

type Milestone struct {
	ID          string `json:"id"`
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Kind 可查詢的內容種類
type Kind string

const (
	KindServices     Kind = "services"
	KindProcess      Kind = "process"
	KindTeam         Kind = "team"
	KindStatistics   Kind = "statistics"
	KindTestimonials Kind = "testimonials"
	KindMilestones   Kind = "milestones"
)

// Kinds 依固定順序列出所有種類
func Kinds() []Kind {
	return []Kind{KindServices, KindProcess, KindTeam, KindStatistics, KindTestimonials, KindMilestones}
}

// Lookup 回傳某種內容的複本；未知種類回傳 false
func Lookup(kind Kind) (any, bool) {
	switch kind {
	case KindServices:
		return Services(), true
	case KindProcess:
		return Process(), true
	case KindTeam:
		return Team(), true
	case KindStatistics:
		return Statistics(), true
	case KindTestimonials:
		return Testimonials(), true
	case KindMilestones:
		return Milestones(), true
	}
	return nil, false
}

func Services() []Service         { return slices.Clone(services) }
func Process() []ProcessStep      { return slices.Clone(process) }
func Team() []TeamMember          { return slices.Clone(team) }
func Statistics() []Statistic     { return slices.Clone(statistics) }
func Testimonials() []Testimonial { return slices.Clone(testimonials) }

// Milestones 依 Order 由小到大
func Milestones() []Milestone {
	out := slices.Clone(milestones)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}
