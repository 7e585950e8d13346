package dto

import (
	"time"

	"github.com/bloglist/bloglist/internal/model"
)

// BlogStatsResponse represents aggregated like activity for one blog.
type BlogStatsResponse struct {
	BlogID  string               `json:"blog_id"`
	From    string               `json:"from"`
	To      string               `json:"to"`
	Summary BlogStatsSummary     `json:"summary"`
	Daily   []DailyBlogStatsItem `json:"daily"`
}

// BlogStatsSummary holds range totals.
type BlogStatsSummary struct {
	TotalLikes     int64   `json:"total_likes"`
	UniqueLikers   int64   `json:"unique_likers"`
	AvgLikesPerDay float64 `json:"avg_likes_per_day"`
}

// DailyBlogStatsItem is one day of like activity.
type DailyBlogStatsItem struct {
	Date         string `json:"date"`
	TotalLikes   int64  `json:"total_likes"`
	UniqueLikers int64  `json:"unique_likers"`
}

// ToBlogStatsResponse builds the stats response from model aggregates.
func ToBlogStatsResponse(blogID string, from, to time.Time, summary *model.BlogStatsSummary, daily []*model.DailyBlogStats) *BlogStatsResponse {
	items := make([]DailyBlogStatsItem, len(daily))
	for i, stat := range daily {
		items[i] = DailyBlogStatsItem{
			Date:         stat.Date.Format("2006-01-02"),
			TotalLikes:   stat.TotalLikes,
			UniqueLikers: stat.UniqueLikers,
		}
	}

	return &BlogStatsResponse{
		BlogID: blogID,
		From:   from.Format("2006-01-02"),
		To:     to.Format("2006-01-02"),
		Summary: BlogStatsSummary{
			TotalLikes:     summary.TotalLikes,
			UniqueLikers:   summary.UniqueLikers,
			AvgLikesPerDay: summary.AvgLikesPerDay,
		},
		Daily: items,
	}
}
