package workflow_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmdatafocus/dwh_backend/config"
	"github.com/mmdatafocus/dwh_backend/models"
	"github.com/mmdatafocus/dwh_backend/utils"
	"github.com/mmdatafocus/dwh_backend/workflow"
)

// End-to-end refresh against a throwaway MySQL: seed bronze rows, run the
// full refresh twice, and assert the cleansing rules and idempotence on the
// silver tables.
func TestRefreshAll_EndToEnd(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "dwh_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
	db := config.GetDB()

	seed := []interface{}{
		// Two versions of customer 1, one junk id.
		&models.BronzeCrmCustInfo{CstID: utils.NewString("1"), CstKey: utils.NewString("AW00000001"), CstFirstname: utils.NewString(" Jon "), CstMaritalSts: utils.NewString("s"), CstGndr: utils.NewString("M"), CstCreateDate: utils.NewString("2021-01-01")},
		&models.BronzeCrmCustInfo{CstID: utils.NewString("1"), CstKey: utils.NewString("AW00000001"), CstFirstname: utils.NewString("Jonathan"), CstMaritalSts: utils.NewString("M"), CstGndr: utils.NewString("M"), CstCreateDate: utils.NewString("2022-06-01")},
		&models.BronzeCrmCustInfo{CstID: utils.NewString("junk"), CstKey: utils.NewString("AW-BROKEN")},
		// Two versions of one product key.
		&models.BronzeCrmPrdInfo{PrdID: utils.NewString("10"), PrdKey: utils.NewString("CO-RF-FR-R92B-58"), PrdNm: utils.NewString("HL Road Frame"), PrdCost: utils.NewString("1000"), PrdLine: utils.NewString("R"), PrdStartDt: utils.NewString("2011-07-01")},
		&models.BronzeCrmPrdInfo{PrdID: utils.NewString("11"), PrdKey: utils.NewString("CO-RF-FR-R92B-58"), PrdNm: utils.NewString("HL Road Frame"), PrdCost: utils.NewString("1100"), PrdLine: utils.NewString("R"), PrdStartDt: utils.NewString("2012-07-01")},
		// Inconsistent measures and a zero order date.
		&models.BronzeCrmSalesDetails{SlsOrdNum: utils.NewString("SO1"), SlsPrdKey: utils.NewString("FR-R92B-58"), SlsCustID: utils.NewString("1"), SlsOrderDt: utils.NewString("0"), SlsQuantity: utils.NewString("2"), SlsPrice: utils.NewString("0"), SlsSales: utils.NewString("20")},
		// Demo with future birth date and NAS prefix.
		&models.BronzeErpCustAz12{Cid: utils.NewString("NASAW00000001"), Bdate: utils.NewString("2099-01-01"), Gen: utils.NewString("Male")},
		// Location with mapped and unmapped codes.
		&models.BronzeErpLocA101{Cid: utils.NewString("AW-00000001"), Cntry: utils.NewString("DE")},
		&models.BronzeErpLocA101{Cid: utils.NewString("AW-00000002"), Cntry: utils.NewString("ZZ")},
		&models.BronzeErpPxCatG1v2{CatID: utils.NewString("CO_RF"), Cat: utils.NewString("Components"), Subcat: utils.NewString("Road Frames"), Maintenance: utils.NewString("Yes")},
	}
	for _, row := range seed {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed bronze: %v", err)
		}
	}

	refresher := workflow.NewRefresher(db, config.GetLogger())
	if err := refresher.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll: %v", err)
	}

	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		t.Fatalf("read silver_customers: %v", err)
	}
	if len(customers) != 1 {
		t.Fatalf("silver_customers rows = %d, want 1 (dedup + junk id dropped)", len(customers))
	}
	if customers[0].FirstName != "Jonathan" || customers[0].MaritalStatus != models.MaritalStatusMarried {
		t.Errorf("kept version %+v, want the 2022-06-01 one", customers[0])
	}

	var products []models.Product
	if err := db.Order("valid_from ASC").Find(&products).Error; err != nil {
		t.Fatalf("read silver_products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("silver_products rows = %d, want 2", len(products))
	}
	if products[0].ValidTo == nil || !products[0].ValidTo.Equal(time.Date(2012, 6, 30, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("v1 valid_to = %v, want 2012-06-30", products[0].ValidTo)
	}
	if products[1].ValidTo != nil {
		t.Errorf("v2 valid_to = %v, want open", products[1].ValidTo)
	}

	var lines []models.SalesLine
	if err := db.Find(&lines).Error; err != nil {
		t.Fatalf("read silver_sales_lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("silver_sales_lines rows = %d, want 1", len(lines))
	}
	if lines[0].UnitPrice == nil || *lines[0].UnitPrice != 10 {
		t.Errorf("unit_price = %v, want 10 derived", lines[0].UnitPrice)
	}
	if lines[0].SalesAmount == nil || *lines[0].SalesAmount != 20 {
		t.Errorf("sales_amount = %v, want 20", lines[0].SalesAmount)
	}
	if lines[0].OrderDate != nil {
		t.Errorf("order_date = %v, want nil for sentinel 0", lines[0].OrderDate)
	}

	var demos []models.CustomerDemo
	if err := db.Find(&demos).Error; err != nil {
		t.Fatalf("read silver_customer_demos: %v", err)
	}
	if len(demos) != 1 || demos[0].CustomerID != "AW00000001" {
		t.Fatalf("demos = %+v, want one row with NAS stripped", demos)
	}
	if demos[0].BirthDate != nil {
		t.Errorf("birth_date = %v, want nil for future date", demos[0].BirthDate)
	}

	var locs []models.Location
	if err := db.Order("customer_id ASC").Find(&locs).Error; err != nil {
		t.Fatalf("read silver_locations: %v", err)
	}
	if len(locs) != 2 || locs[0].Country != "Germany" || locs[1].Country != "ZZ" {
		t.Fatalf("locations = %+v, want Germany and ZZ pass-through", locs)
	}

	var runs []models.RefreshRun
	if err := db.Where("run_id = ?", refresher.RunID).Find(&runs).Error; err != nil {
		t.Fatalf("read refresh runs: %v", err)
	}
	if len(runs) != 6 {
		t.Fatalf("refresh run rows = %d, want 6", len(runs))
	}
	for _, run := range runs {
		if run.Status != models.RefreshRunStatusSucceeded {
			t.Errorf("kind %s status = %s: %s", run.Kind, run.Status, run.Error)
		}
		if run.Kind == models.EntityKindCustomers && run.RowsDropped != 1 {
			t.Errorf("customers rows_dropped = %d, want 1", run.RowsDropped)
		}
	}

	// Idempotence: a second refresh over unchanged bronze input reproduces
	// the silver content except for the load timestamp.
	second := workflow.NewRefresher(db, config.GetLogger())
	if err := second.RefreshAll(context.Background()); err != nil {
		t.Fatalf("second RefreshAll: %v", err)
	}
	var customersAgain []models.Customer
	if err := db.Find(&customersAgain).Error; err != nil {
		t.Fatalf("re-read silver_customers: %v", err)
	}
	if len(customersAgain) != len(customers) {
		t.Fatalf("second run customer count = %d, want %d", len(customersAgain), len(customers))
	}
	a, b := customers[0], customersAgain[0]
	a.LoadedAt, b.LoadedAt = time.Time{}, time.Time{}
	if fmt.Sprint(a) != fmt.Sprint(b) {
		t.Errorf("second run diverged:\n%+v\n%+v", a, b)
	}
}

// A broken bronze source fails only its own kind: the other five loads
// still complete, the failed kind's run row records Failed, and the joined
// error names the failed kind alone.
func TestRefreshAll_FailedKindDoesNotBlockOthers(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "dwh_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()
	db := config.GetDB()

	if err := db.Create(&models.BronzeCrmCustInfo{CstID: utils.NewString("1"), CstCreateDate: utils.NewString("2022-06-01")}).Error; err != nil {
		t.Fatalf("seed bronze: %v", err)
	}
	if err := db.Create(&models.BronzeErpLocA101{Cid: utils.NewString("AW-1"), Cntry: utils.NewString("DE")}).Error; err != nil {
		t.Fatalf("seed bronze: %v", err)
	}
	// Break the products source only.
	if err := db.Migrator().DropTable(&models.BronzeCrmPrdInfo{}); err != nil {
		t.Fatalf("drop products bronze table: %v", err)
	}

	refresher := workflow.NewRefresher(db, config.GetLogger())
	err := refresher.RefreshAll(context.Background())
	if err == nil {
		t.Fatal("expected an error for the broken products load")
	}
	if !strings.Contains(err.Error(), "refresh products:") {
		t.Errorf("joined error does not name products: %v", err)
	}
	for _, kind := range models.AllEntityKinds() {
		if kind == models.EntityKindProducts {
			continue
		}
		if strings.Contains(err.Error(), fmt.Sprintf("refresh %s:", kind)) {
			t.Errorf("joined error names healthy kind %s: %v", kind, err)
		}
	}

	// The healthy kinds still replaced their tables.
	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		t.Fatalf("read silver_customers: %v", err)
	}
	if len(customers) != 1 {
		t.Errorf("silver_customers rows = %d, want 1", len(customers))
	}
	var locs []models.Location
	if err := db.Find(&locs).Error; err != nil {
		t.Fatalf("read silver_locations: %v", err)
	}
	if len(locs) != 1 || locs[0].Country != "Germany" {
		t.Errorf("locations = %+v, want one Germany row", locs)
	}

	var runs []models.RefreshRun
	if err := db.Where("run_id = ?", refresher.RunID).Find(&runs).Error; err != nil {
		t.Fatalf("read refresh runs: %v", err)
	}
	if len(runs) != 6 {
		t.Fatalf("refresh run rows = %d, want 6", len(runs))
	}
	for _, run := range runs {
		want := models.RefreshRunStatusSucceeded
		if run.Kind == models.EntityKindProducts {
			want = models.RefreshRunStatusFailed
		}
		if run.Status != want {
			t.Errorf("kind %s status = %s, want %s (%s)", run.Kind, run.Status, want, run.Error)
		}
	}
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("dwh-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=dwh_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
