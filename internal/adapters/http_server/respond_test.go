package httpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestETagMatches(t *testing.T) {
	const etag = `W/"abc"`
	cases := map[string]bool{
		``:               false,
		`W/"abc"`:        true,
		`"abc"`:          true,
		`"x", W/"abc"`:   true,
		` "x" ,  "abc" `: true,
		`*`:              true,
		`"x", "y"`:       false,
		`W/"abcd"`:       false,
		`,,`:             false,
	}
	for hdr, want := range cases {
		assert.Equal(t, want, etagMatches(hdr, etag), hdr)
	}
}
