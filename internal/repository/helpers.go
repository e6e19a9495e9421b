package repository

const (
	defaultPage  = 1
	defaultLimit = 9
	maxLimit     = 50
)

// PageVerify clamps page/limit query params to sane values.
func PageVerify(page, limit *int64) {
	if *page < 1 {
		*page = defaultPage
	}
	if *limit < 1 || *limit > maxLimit {
		*limit = defaultLimit
	}
}
