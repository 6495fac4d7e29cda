package tenderportal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeFlag(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"/Content/icons/notice_national.png", "national"},
		{"/Content/icons/notice_eu.gif", "eu"},
		{"/img/img_dps_icon.gif", "dps"},
		{"https://portal.example.com/img/img_eu_icon.png", "eu"},
	}
	for _, c := range cases {
		flag, err := DecodeFlag(c.src)
		require.NoError(t, err, c.src)
		require.Equal(t, c.want, flag)
	}
}

func TestDecodeFlagUnknownConvention(t *testing.T) {
	for _, src := range []string{
		"/Content/icons/shiny_new_badge.png",
		"/Content/icons/notice_national.svg",
		"",
	} {
		_, err := DecodeFlag(src)
		require.ErrorIs(t, err, ErrFlagParse, src)
	}
}
