package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type PagingOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	DefaultOpts = PagingOptions{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = PagingOptions{DefaultPerPage: 50, MaxPerPage: 500}
)

type Paging struct {
	Page    int
	PerPage int
}

func (p Paging) Limit() int  { return p.PerPage }
func (p Paging) Offset() int { return (p.Page - 1) * p.PerPage }

// ParseFiber: parse ?page= & ?per_page= (alias ?limit=) dari Fiber ctx + normalisasi.
func ParseFiber(c *fiber.Ctx, opt PagingOptions) Paging {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	perRaw := strings.TrimSpace(c.Query("per_page"))
	if perRaw == "" {
		perRaw = strings.TrimSpace(c.Query("limit"))
	}
	per := opt.DefaultPerPage
	if n, err := strconv.Atoi(perRaw); err == nil && n > 0 {
		per = n
	}
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	if per < 1 {
		per = opt.DefaultPerPage
	}

	return Paging{Page: page, PerPage: per}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
