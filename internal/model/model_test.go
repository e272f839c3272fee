package model

import (
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type ModelUnitSuite struct {
	suite.Suite
}

func (s *ModelUnitSuite) TestYear(t provider.T) {
	assert.Equal(t, "1999", Year("1999-10-15"))
	assert.Equal(t, "", Year(""))
	assert.Equal(t, "", Year("soon"))
}

func (s *ModelUnitSuite) TestExpired(t provider.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Minute)

	assert.True(t, Game{Status: StatusVoting, Deadline: &past}.Expired(now))
	assert.True(t, Game{Status: StatusVoting, Deadline: &now}.Expired(now))
	assert.False(t, Game{Status: StatusVoting, Deadline: &future}.Expired(now))
	assert.False(t, Game{Status: StatusLobby, Deadline: &past}.Expired(now))
	assert.False(t, Game{Status: StatusVoting}.Expired(now))
}

func (s *ModelUnitSuite) TestTrailer(t provider.T) {
	d := MovieDetails{Videos: []Video{
		{Key: "a", Site: "Vimeo", Type: "Trailer"},
		{Key: "b", Site: "YouTube", Type: "Teaser"},
		{Key: "c", Site: "YouTube", Type: "Trailer"},
	}}
	v, ok := d.Trailer()
	assert.True(t, ok)
	assert.Equal(t, "c", v.Key)

	v, ok = MovieDetails{Videos: []Video{{Key: "x"}}}.Trailer()
	assert.True(t, ok)
	assert.Equal(t, "x", v.Key)

	_, ok = MovieDetails{}.Trailer()
	assert.False(t, ok)
}

func (s *ModelUnitSuite) TestCredits(t provider.T) {
	c := Credits{
		Cast: []CastMember{{Name: "A", Order: 0}, {Name: "B", Order: 1}},
		Crew: []CrewMember{{Name: "W", Job: "Writer"}, {Name: "D", Job: "Director"}},
	}

	assert.Equal(t, "D", c.Director())
	assert.Len(t, c.TopCast(5), 2)
	assert.Equal(t, "A", c.TopCast(1)[0].Name)
	assert.Equal(t, "", Credits{}.Director())
}

func TestModelUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ModelUnitSuite))
}
