// internal/app/cmd.go
package app

// Command is the storefront subcommand to run.
type Command string

const (
	CommandHelp Command = "help"

	// Catalog
	CommandProducts Command = "products"
	CommandProduct  Command = "product"
	CommandCourses  Command = "courses"
	CommandCourse   Command = "course"
	CommandPackages Command = "packages"
	CommandBanners  Command = "banners"
	CommandRefresh  Command = "refresh"

	CommandCart Command = "cart"

	// Session
	CommandLogin    Command = "login"
	CommandRegister Command = "register"
	CommandLogout   Command = "logout"
	CommandWhoami   Command = "whoami"

	// Checkout
	CommandSlots    Command = "slots"
	CommandCheckout Command = "checkout"

	// Account
	CommandOrders        Command = "orders"
	CommandBookings      Command = "bookings"
	CommandCancelBooking Command = "cancel-booking"
	CommandEnrollments   Command = "enrollments"
	CommandEnroll        Command = "enroll"
	CommandReferral      Command = "referral"

	// CommandSandbox serves the in-memory backend over HTTP.
	CommandSandbox Command = "sandbox"
	// CommandMigrate applies the storage migrations and exits.
	CommandMigrate Command = "migrate"
)

var commands = []Command{
	CommandHelp,
	CommandProducts, CommandProduct, CommandCourses, CommandCourse, CommandPackages, CommandBanners, CommandRefresh,
	CommandCart,
	CommandLogin, CommandRegister, CommandLogout, CommandWhoami,
	CommandSlots, CommandCheckout,
	CommandOrders, CommandBookings, CommandCancelBooking, CommandEnrollments, CommandEnroll, CommandReferral,
	CommandSandbox, CommandMigrate,
}

// ParseCommand returns the subcommand named by args[0]. Empty or unknown
// input yields CommandHelp.
func ParseCommand(args []string) Command {
	if len(args) == 0 {
		return CommandHelp
	}
	for _, c := range commands {
		if string(c) == args[0] {
			return c
		}
	}
	return CommandHelp
}

