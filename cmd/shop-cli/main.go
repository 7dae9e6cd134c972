package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MechanicShop/MechanicShop/internal/car"
	"github.com/MechanicShop/MechanicShop/internal/common/apperr"
	"github.com/MechanicShop/MechanicShop/internal/common/config"
	"github.com/MechanicShop/MechanicShop/internal/common/db"
	"github.com/MechanicShop/MechanicShop/internal/common/logger"
	"github.com/MechanicShop/MechanicShop/internal/customer"
	"github.com/MechanicShop/MechanicShop/internal/mechanic"
	"github.com/MechanicShop/MechanicShop/internal/report"
	"github.com/MechanicShop/MechanicShop/internal/request"
	"github.com/MechanicShop/MechanicShop/internal/resolve"
	"github.com/google/uuid"
)

var (
	configPath = flag.String("config", "configs/shop-service.json", "配置文件路径")
)

// cli 交互层：菜单分发 + 输入提示/重试循环。
// 业务校验全部在各领域 Service 内，这里只负责收集输入并展示结果。
type cli struct {
	in        *bufio.Reader
	log       logger.Logger
	customers *customer.Service
	mechanics *mechanic.Service
	cars      *car.Service
	requests  *request.Service
	reports   *report.Service
	resolver  *resolve.Resolver
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}

	gormDB, err := db.NewMySQL(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Database,
		cfg.Database.MaxIdle,
		cfg.Database.MaxOpen,
	)
	if err != nil {
		log.Fatalf("failed to init mysql: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&customer.Customer{},
		&mechanic.Mechanic{},
		&car.Car{},
		&car.Ownership{},
		&request.ServiceRequest{},
		&request.ClosedRequest{},
	); err != nil {
		log.Fatalf("failed to migrate mysql schema: %v", err)
	}

	customerSvc := customer.NewService(customer.NewRepo(gormDB))
	mechanicSvc := mechanic.NewService(mechanic.NewRepo(gormDB))
	carSvc := car.NewService(car.NewRepo(gormDB), customerSvc)
	requestSvc := request.NewService(request.NewRepo(gormDB), customerSvc, carSvc, mechanicSvc)
	reportSvc := report.NewService(report.NewRepo(gormDB), nil)

	c := &cli{
		in:        bufio.NewReader(os.Stdin),
		log:       log.WithField("session", uuid.New().String()),
		customers: customerSvc,
		mechanics: mechanicSvc,
		cars:      carSvc,
		requests:  requestSvc,
		reports:   reportSvc,
		resolver:  resolve.NewResolver(customerSvc, carSvc, mechanicSvc, requestSvc),
	}
	c.run(context.Background())
}

func (c *cli) run(ctx context.Context) {
	for {
		fmt.Println()
		fmt.Println("MAIN MENU")
		fmt.Println("---------")
		fmt.Println("1. AddCustomer")
		fmt.Println("2. AddMechanic")
		fmt.Println("3. AddCar")
		fmt.Println("4. InsertServiceRequest")
		fmt.Println("5. CloseServiceRequest")
		fmt.Println("6. ListCustomersWithBillLessThan100")
		fmt.Println("7. ListCustomersWithMoreThan20Cars")
		fmt.Println("8. ListCarsBefore1995With50000Miles")
		fmt.Println("9. ListKCarsWithTheMostServices")
		fmt.Println("10. ListCustomersInDescendingOrderOfTheirTotalBill")
		fmt.Println("11. < EXIT")

		choice, err := c.readInt("Please make your choice: ")
		if err != nil {
			fmt.Println("Your input is invalid!")
			continue
		}

		switch choice {
		case 1:
			c.addCustomer(ctx)
		case 2:
			c.addMechanic(ctx)
		case 3:
			c.addCar(ctx)
		case 4:
			c.insertServiceRequest(ctx)
		case 5:
			c.closeServiceRequest(ctx)
		case 6:
			c.listSmallRecentBills(ctx)
		case 7:
			c.listCarCollectors(ctx)
		case 8:
			c.listLowMileageClassics(ctx)
		case 9:
			c.listTopServiced(ctx)
		case 10:
			c.listTotals(ctx)
		case 11:
			fmt.Println("Done\n\nBye !")
			return
		default:
			fmt.Println("Your input is invalid!")
		}
	}
}

func (c *cli) readLine(prompt string) string {
	fmt.Printf("\t%s$ ", prompt)
	line, _ := c.in.ReadString('\n')
	return strings.TrimSpace(line)
}

func (c *cli) readInt(prompt string) (int, error) {
	return strconv.Atoi(c.readLine(prompt))
}

// fail 统一的操作失败出口：打日志 + 给用户一行提示。
func (c *cli) fail(op string, err error) {
	c.log.Warnf("%s failed: %v", op, err)
	fmt.Printf("\t%v\n", err)
}

// retry 校验类错误重新提示，其余错误结束本次操作。
func (c *cli) retry(op string, fn func() error) {
	for {
		err := fn()
		if err == nil {
			return
		}
		if apperr.KindOf(err) == apperr.KindValidation {
			fmt.Printf("\t%v, please try again\n", err)
			continue
		}
		c.fail(op, err)
		return
	}
}

func (c *cli) addCustomer(ctx context.Context) {
	c.retry("add customer", func() error {
		_, err := c.promptNewCustomer(ctx)
		return err
	})
}

// promptNewCustomer 录入客户字段并落库，新建成功时回显生成的编号。
func (c *cli) promptNewCustomer(ctx context.Context) (*customer.Customer, error) {
	in := customer.AddInput{
		FName:   c.readLine("Enter customer's first name: "),
		LName:   c.readLine("Enter customer's last name: "),
		Phone:   c.readLine("Enter customer's phone, format (###)###-####: "),
		Address: c.readLine("Enter customer's address: "),
	}
	cust, err := c.customers.Add(ctx, in)
	if err != nil {
		return nil, err
	}
	fmt.Printf("\tAdded customer %d: %s %s\n", cust.ID, cust.FName, cust.LName)
	return cust, nil
}

func (c *cli) addMechanic(ctx context.Context) {
	c.retry("add mechanic", func() error {
		fname := c.readLine("Enter mechanic's first name: ")
		lname := c.readLine("Enter mechanic's last name: ")
		years, err := c.readInt("Enter years of experience: ")
		if err != nil {
			return apperr.Validationf(apperr.CodeNotAnInteger, "years of experience must be an integer")
		}
		m, err := c.mechanics.Add(ctx, mechanic.AddInput{FName: fname, LName: lname, Experience: years})
		if err != nil {
			return err
		}
		fmt.Printf("\tAdded mechanic %d: %s %s\n", m.ID, m.FName, m.LName)
		return nil
	})
}

func (c *cli) addCar(ctx context.Context) {
	c.retry("add car", func() error {
		_, err := c.promptNewCar(ctx, nil)
		return err
	})
}

// promptNewCar 录入车辆字段并落库；ownerID 非空时在同一事务里建立归属。
func (c *cli) promptNewCar(ctx context.Context, ownerID *uint) (*car.Car, error) {
	in := car.AddInput{
		VIN:     c.readLine("Enter car's vin (16 characters): "),
		Make:    c.readLine("Enter car's make: "),
		Model:   c.readLine("Enter car's model: "),
		Year:    c.readLine("Enter car's year: "),
		OwnerID: ownerID,
	}
	vehicle, err := c.cars.Add(ctx, in)
	if err != nil {
		return nil, err
	}
	fmt.Printf("\tAdded car %s: %s %s (%d)\n", vehicle.VIN, vehicle.Make, vehicle.Model, vehicle.Year)
	return vehicle, nil
}

// insertServiceRequest 开单全流程：
// 姓氏定位客户（可新建）-> 名下选车（可新建）-> 里程 + 投诉 -> 落单。
func (c *cli) insertServiceRequest(ctx context.Context) {
	lname := c.readLine("Enter customer's last name: ")

	cust, _, candidates, err := c.resolver.OrCreateCustomer(ctx, lname, func(ctx context.Context) (*customer.Customer, error) {
		fmt.Println("\tCould not find a customer with that last name")
		if ans := c.readLine("Would you like to add a new customer? [Y/N]: "); ans != "Y" {
			return nil, fmt.Errorf("cancelled")
		}
		return c.promptNewCustomer(ctx)
	})
	if err != nil {
		fmt.Println("\tCancelling service request")
		return
	}
	if cust == nil {
		// 多候选，按下标消歧
		for i, cand := range candidates {
			fmt.Printf("\t%d: %s, %s, %s, %s\n", i, cand.FName, cand.LName, cand.Phone, cand.Address)
		}
		idx, err := c.readInt("Enter desired customer's option id: ")
		if err != nil {
			fmt.Println("\tOption id must be an integer")
			return
		}
		cust, err = resolve.PickCustomer(candidates, idx)
		if err != nil {
			c.fail("pick customer", err)
			return
		}
	}

	vin, ok := c.pickOrCreateCar(ctx, cust)
	if !ok {
		fmt.Println("\tCancelling service request")
		return
	}

	odometer, err := c.readInt("Enter the odometer reading of the car: ")
	if err != nil {
		fmt.Println("\tOdometer reading must be an integer")
		return
	}
	complaint := c.readLine("Enter customer complaint about car: ")

	sr, err := c.requests.Open(ctx, request.OpenInput{
		CustomerID: cust.ID,
		CarVIN:     vin,
		Odometer:   odometer,
		Complaint:  complaint,
	})
	if err != nil {
		c.fail("open service request", err)
		return
	}
	fmt.Printf("\tOpened service request %d for car %s\n", sr.RID, sr.CarVIN)
}

// pickOrCreateCar 在客户名下选一辆车，必要时新建并挂到该客户名下。
func (c *cli) pickOrCreateCar(ctx context.Context, cust *customer.Customer) (string, bool) {
	owned, err := c.resolver.CarCandidates(ctx, cust.ID)
	if err != nil {
		c.fail("list owned cars", err)
		return "", false
	}

	if len(owned) > 0 {
		for i, v := range owned {
			fmt.Printf("\t%d: %s, %s, %s, %d\n", i, v.VIN, v.Make, v.Model, v.Year)
		}
		if ans := c.readLine("Would you like to enter a service request for one of these cars? [Y/N]: "); ans == "Y" {
			idx, err := c.readInt("Enter desired car's option id: ")
			if err != nil {
				fmt.Println("\tOption id must be an integer")
				return "", false
			}
			picked, err := resolve.PickCar(owned, idx)
			if err != nil {
				c.fail("pick car", err)
				return "", false
			}
			return picked.VIN, true
		}
	}

	prompt := fmt.Sprintf("Would you like to add a car for %s %s? [Y/N]: ", cust.FName, cust.LName)
	if ans := c.readLine(prompt); ans != "Y" {
		return "", false
	}
	ownerID := cust.ID
	vehicle, err := c.promptNewCar(ctx, &ownerID)
	if err != nil {
		c.fail("add car", err)
		return "", false
	}
	return vehicle.VIN, true
}

func (c *cli) closeServiceRequest(ctx context.Context) {
	rid, err := c.readInt("Enter service request number: ")
	if err != nil || rid <= 0 {
		fmt.Println("\tService request number must be a positive integer")
		return
	}
	mid, err := c.readInt("Enter mechanic id: ")
	if err != nil {
		fmt.Println("\tMechanic id must be an integer")
		return
	}
	comment := c.readLine("Enter closing comment: ")
	bill, err := c.readInt("Enter final bill amount: ")
	if err != nil {
		fmt.Println("\tBill amount must be an integer")
		return
	}

	cr, err := c.requests.Close(ctx, request.CloseInput{
		RID:        uint(rid),
		MechanicID: mid,
		Comment:    comment,
		Bill:       bill,
	})
	if err != nil {
		c.fail("close service request", err)
		return
	}
	fmt.Printf("\tClosed service request %d, bill %d\n", cr.RID, cr.Bill)
}

func (c *cli) listSmallRecentBills(ctx context.Context) {
	rows, err := c.reports.CustomersWithSmallRecentBill(ctx)
	if err != nil {
		c.fail("report", err)
		return
	}
	for _, r := range rows {
		fmt.Printf("\t%d: %s %s, latest bill %d at %s\n", r.CustomerID, r.FName, r.LName, r.Bill, r.ClosedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\ttotal: %d\n", len(rows))
}

func (c *cli) listCarCollectors(ctx context.Context) {
	rows, err := c.reports.CarCollectors(ctx)
	if err != nil {
		c.fail("report", err)
		return
	}
	for _, r := range rows {
		fmt.Printf("\t%d: %s %s, %d cars\n", r.CustomerID, r.FName, r.LName, r.Cars)
	}
	fmt.Printf("\ttotal: %d\n", len(rows))
}

func (c *cli) listLowMileageClassics(ctx context.Context) {
	rows, err := c.reports.LowMileageClassics(ctx)
	if err != nil {
		c.fail("report", err)
		return
	}
	for _, r := range rows {
		fmt.Printf("\t%s: %s %s (%d)\n", r.VIN, r.Make, r.Model, r.Year)
	}
	fmt.Printf("\ttotal: %d\n", len(rows))
}

func (c *cli) listTopServiced(ctx context.Context) {
	k, err := c.readInt("Enter how many cars to list: ")
	if err != nil {
		fmt.Println("\tCount must be an integer")
		return
	}
	openOnly := c.readLine("Count open requests only? [Y/N]: ") == "Y"
	rows, err := c.reports.TopServicedCars(ctx, k, openOnly)
	if err != nil {
		c.fail("report", err)
		return
	}
	for _, r := range rows {
		fmt.Printf("\t%s: %s %s (%d), %d requests\n", r.VIN, r.Make, r.Model, r.Year, r.Services)
	}
}

func (c *cli) listTotals(ctx context.Context) {
	rows, err := c.reports.CustomersByTotalBill(ctx)
	if err != nil {
		c.fail("report", err)
		return
	}
	for _, r := range rows {
		fmt.Printf("\t%d: %s %s, total %d\n", r.CustomerID, r.FName, r.LName, r.Total)
	}
	fmt.Printf("\ttotal: %d\n", len(rows))
}
