package utils

import "errors"

var ErrorRefreshInProgress = errors.New("a silver refresh is already running")
