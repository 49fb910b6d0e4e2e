package app

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/avstrong/dims/internal/config"
	"github.com/avstrong/dims/internal/dims"
	"github.com/avstrong/dims/internal/logger"
	"github.com/avstrong/dims/internal/transport/soap"
	"github.com/google/uuid"
)

var errUsage = errors.New("specify one of: roomlist, availability, update, bookings")

const usage = `Usage: dims <command> [flags]

Commands:
  roomlist      -resort <id>
  availability  -resort <id> -room <id> -start <YYYY-MM-DD> -end <YYYY-MM-DD>
  update        -resort <id> -room <id> -date <DD-MM-YYYY> -qty <n>
  bookings      -resort <id> -start <YYYY-MM-DD> -end <YYYY-MM-DD>

Flags:
  -action <name>   override the SOAPAction operation name

Environment:
  DIMS_USERNAME, DIMS_PASSWORD, DIMS_TOKEN (required)
  DIMS_INVENTORY_URL, DIMS_RATES_URL, DIMS_TIMEOUT_SECONDS (optional)
`

func Run(l *logger.Logger, args []string) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)

		return errUsage
	}

	command := args[0]

	fs := flag.NewFlagSet(command, flag.ContinueOnError)

	var (
		resort = fs.String("resort", "", "resort id")
		room   = fs.String("room", "", "room type id")
		start  = fs.String("start", "", "start date, YYYY-MM-DD")
		end    = fs.String("end", "", "end date, YYYY-MM-DD")
		date   = fs.String("date", "", "inventory date, DD-MM-YYYY")
		qty    = fs.String("qty", "", "inventory allocation")
		action = fs.String("action", "", "override the SOAPAction operation name")
	)

	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("parse %s flags: %w", command, err)
	}

	conf, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	inv, err := soap.New(soap.Conf{
		L:            l,
		UserName:     conf.UserName,
		PassWord:     conf.PassWord,
		Token:        conf.Token,
		InventoryURL: conf.InventoryURL,
		RatesURL:     conf.RatesURL,
		Timeout:      conf.Timeout,
	})
	if err != nil {
		return fmt.Errorf("init soap invoker: %w", err)
	}

	client := dims.New(l, inv)

	ctx = dims.NewContextWithRequestID(ctx, uuid.NewString())

	var out any

	switch command {
	case "roomlist":
		out, err = client.GetRoomList(ctx, dims.RoomListInput{
			ResortID:     *resort,
			ActionHeader: *action,
		})
	case "availability":
		out, err = client.RetrieveAvailability(ctx, dims.AvailabilityInput{
			ResortID:     *resort,
			RoomID:       *room,
			StartDate:    *start,
			EndDate:      *end,
			ActionHeader: *action,
		})
	case "update":
		out, err = client.UpdateAvailability(ctx, dims.UpdateAvailabilityInput{
			RoomID:       *room,
			ResortID:     *resort,
			Date:         *date,
			Quantity:     *qty,
			ActionHeader: *action,
		})
	case "bookings":
		out, err = client.GetBookings(ctx, dims.BookingsInput{
			ResortID:     *resort,
			StartDate:    *start,
			EndDate:      *end,
			ActionHeader: *action,
		})
	default:
		fmt.Fprint(os.Stderr, usage)

		return fmt.Errorf("unknown command %q: %w", command, errUsage)
	}

	if inputErr := dims.IsInputError(err); inputErr != nil {
		for field, msgs := range inputErr.Fields() {
			l.LogErrorf("Invalid %s: %s", field, strings.Join(msgs, "; "))
		}

		return fmt.Errorf("run %s: %w", command, err)
	}

	if err != nil {
		return fmt.Errorf("run %s: %w", command, err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode %s result: %w", command, err)
	}

	return nil
}
