package function

import (
	"os"
	"os/user"
	"strconv"

	"github.com/ZanzyTHEbar/fsquery/fsq/variant"
)

func (e *Evaluator) evalIdentity(fn Function) variant.Value {
	switch fn {
	case CurrentUid:
		return variant.FromInt(int64(os.Getuid()))
	case CurrentGid:
		return variant.FromInt(int64(os.Getgid()))
	case CurrentUser:
		u, err := user.Current()
		if err != nil {
			e.logger.Debug().Err(err).Msg("current user lookup failed")
			return variant.Empty(variant.String)
		}
		return variant.FromString(u.Username)
	case CurrentGroup:
		g, err := user.LookupGroupId(strconv.Itoa(os.Getgid()))
		if err != nil {
			e.logger.Debug().Err(err).Msg("current group lookup failed")
			return variant.Empty(variant.String)
		}
		return variant.FromString(g.Name)
	}
	return variant.Empty(variant.String)
}
