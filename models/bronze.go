package models

// Bronze tables hold rows exactly as ingested: every source column is
// nullable text, typing happens in the silver load. The autoincrement ID
// records ingestion order and is the deterministic tie-break everywhere
// the cleansing rules need one.

type BronzeCrmCustInfo struct {
	ID            int     `gorm:"primary_key" json:"id"`
	CstID         *string `gorm:"column:cst_id;size:50" json:"cst_id"`
	CstKey        *string `gorm:"column:cst_key;size:50" json:"cst_key"`
	CstFirstname  *string `gorm:"column:cst_firstname;size:100" json:"cst_firstname"`
	CstLastname   *string `gorm:"column:cst_lastname;size:100" json:"cst_lastname"`
	CstMaritalSts *string `gorm:"column:cst_marital_status;size:50" json:"cst_marital_status"`
	CstGndr       *string `gorm:"column:cst_gndr;size:50" json:"cst_gndr"`
	CstCreateDate *string `gorm:"column:cst_create_date;size:50" json:"cst_create_date"`
}

func (BronzeCrmCustInfo) TableName() string {
	return "bronze_crm_cust_info"
}

type BronzeCrmPrdInfo struct {
	ID         int     `gorm:"primary_key" json:"id"`
	PrdID      *string `gorm:"column:prd_id;size:50" json:"prd_id"`
	PrdKey     *string `gorm:"column:prd_key;size:100" json:"prd_key"`
	PrdNm      *string `gorm:"column:prd_nm;size:200" json:"prd_nm"`
	PrdCost    *string `gorm:"column:prd_cost;size:50" json:"prd_cost"`
	PrdLine    *string `gorm:"column:prd_line;size:50" json:"prd_line"`
	PrdStartDt *string `gorm:"column:prd_start_dt;size:50" json:"prd_start_dt"`
}

func (BronzeCrmPrdInfo) TableName() string {
	return "bronze_crm_prd_info"
}

type BronzeCrmSalesDetails struct {
	ID          int     `gorm:"primary_key" json:"id"`
	SlsOrdNum   *string `gorm:"column:sls_ord_num;size:50" json:"sls_ord_num"`
	SlsPrdKey   *string `gorm:"column:sls_prd_key;size:100" json:"sls_prd_key"`
	SlsCustID   *string `gorm:"column:sls_cust_id;size:50" json:"sls_cust_id"`
	SlsOrderDt  *string `gorm:"column:sls_order_dt;size:50" json:"sls_order_dt"`
	SlsShipDt   *string `gorm:"column:sls_ship_dt;size:50" json:"sls_ship_dt"`
	SlsDueDt    *string `gorm:"column:sls_due_dt;size:50" json:"sls_due_dt"`
	SlsSales    *string `gorm:"column:sls_sales;size:50" json:"sls_sales"`
	SlsQuantity *string `gorm:"column:sls_quantity;size:50" json:"sls_quantity"`
	SlsPrice    *string `gorm:"column:sls_price;size:50" json:"sls_price"`
}

func (BronzeCrmSalesDetails) TableName() string {
	return "bronze_crm_sales_details"
}

type BronzeErpCustAz12 struct {
	ID    int     `gorm:"primary_key" json:"id"`
	Cid   *string `gorm:"column:cid;size:50" json:"cid"`
	Bdate *string `gorm:"column:bdate;size:50" json:"bdate"`
	Gen   *string `gorm:"column:gen;size:50" json:"gen"`
}

func (BronzeErpCustAz12) TableName() string {
	return "bronze_erp_cust_az12"
}

type BronzeErpLocA101 struct {
	ID    int     `gorm:"primary_key" json:"id"`
	Cid   *string `gorm:"column:cid;size:50" json:"cid"`
	Cntry *string `gorm:"column:cntry;size:100" json:"cntry"`
}

func (BronzeErpLocA101) TableName() string {
	return "bronze_erp_loc_a101"
}

type BronzeErpPxCatG1v2 struct {
	ID          int     `gorm:"primary_key" json:"id"`
	CatID       *string `gorm:"column:cat_id;size:50" json:"cat_id"`
	Cat         *string `gorm:"column:cat;size:100" json:"cat"`
	Subcat      *string `gorm:"column:subcat;size:100" json:"subcat"`
	Maintenance *string `gorm:"column:maintenance;size:50" json:"maintenance"`
}

func (BronzeErpPxCatG1v2) TableName() string {
	return "bronze_erp_px_cat_g1v2"
}
