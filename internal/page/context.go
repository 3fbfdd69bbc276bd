package page

import (
	"github.com/AngelCh415/marketing-dash/internal/models"
	"github.com/AngelCh415/marketing-dash/internal/views"
)

// Context is an immutable snapshot of a Session handed to render functions.
type Context struct {
	State   State
	Data    models.MarketingData
	Version string
	Err     error
	Query   views.Query
}

func (c Context) WithQuery(q views.Query) Context {
	c.Query = q
	return c
}

// Ready reports why the context cannot be rendered, if it cannot.
func (c Context) Ready() error {
	switch c.State {
	case Loaded:
		return nil
	case Failed:
		return c.Err
	default:
		return ErrNotLoaded
	}
}

// Render builds the named view for this snapshot.
func (c Context) Render(svc *views.Service, view string) (any, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	return svc.Render(view, c.Data, c.Version, c.Query)
}
