package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zenchantlive/marketnews/app/news"
)

// ArticleRepository handles database operations for enriched articles
type ArticleRepository struct {
	db *DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// UpsertArticles stores a batch of enriched articles in a single transaction.
// Articles are keyed by their deterministic id, so repeated aggregation runs
// update rows in place instead of duplicating them.
func (r *ArticleRepository) UpsertArticles(articles []news.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO articles (
			id, title, summary, url, source, category,
			published_at, relevance_score, sentiment, tickers, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			summary = excluded.summary,
			category = excluded.category,
			relevance_score = excluded.relevance_score,
			sentiment = excluded.sentiment,
			tickers = excluded.tickers,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, article := range articles {
		tickers, err := json.Marshal(article.Tickers)
		if err != nil {
			return fmt.Errorf("failed to marshal tickers for %s: %w", article.ID, err)
		}

		_, err = stmt.Exec(
			article.ID, article.Title, article.Summary, article.URL,
			article.Source, article.Category, article.PublishedAt.UTC(),
			article.RelevanceScore, article.Sentiment, string(tickers),
		)
		if err != nil {
			return fmt.Errorf("failed to upsert article %s: %w", article.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRecent returns the most recently published articles, newest first.
func (r *ArticleRepository) GetRecent(limit int) ([]news.Article, error) {
	rows, err := r.db.Query(`
		SELECT id, title, summary, url, source, category,
		       published_at, relevance_score, sentiment, tickers
		FROM articles
		ORDER BY published_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent articles: %w", err)
	}
	defer rows.Close()

	var articles []news.Article
	for rows.Next() {
		var article news.Article
		var tickers string
		err := rows.Scan(
			&article.ID, &article.Title, &article.Summary, &article.URL,
			&article.Source, &article.Category, &article.PublishedAt,
			&article.RelevanceScore, &article.Sentiment, &tickers,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article row: %w", err)
		}
		if err := json.Unmarshal([]byte(tickers), &article.Tickers); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tickers for %s: %w", article.ID, err)
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating article rows: %w", err)
	}

	return articles, nil
}

// GetArticleCount returns the total number of stored articles.
func (r *ArticleRepository) GetArticleCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get article count: %w", err)
	}
	return count, nil
}

// GetSourceCounts returns the number of stored articles per source.
func (r *ArticleRepository) GetSourceCounts() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT source, COUNT(*) FROM articles GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("failed to get source counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var source string
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("failed to scan source count row: %w", err)
		}
		counts[source] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating source count rows: %w", err)
	}

	return counts, nil
}

// PruneOlderThan deletes articles published before cutoff and returns how many
// rows were removed.
func (r *ArticleRepository) PruneOlderThan(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM articles WHERE published_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune articles: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to count pruned articles: %w", err)
	}

	return removed, nil
}
