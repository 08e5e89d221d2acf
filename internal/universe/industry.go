package universe

// industryNames maps the exchanges' two-digit 產業別 codes to category
// names. Both open-data registries use the same code table.
var industryNames = map[string]string{
	"01": "水泥工業", "02": "食品工業", "03": "塑膠工業", "04": "紡織纖維",
	"05": "電機機械", "06": "電器電纜", "07": "化學生技醫療", "08": "玻璃陶瓷",
	"09": "造紙工業", "10": "鋼鐵工業", "11": "橡膠工業", "12": "汽車工業",
	"13": "電子工業", "14": "建材營造", "15": "航運業", "16": "觀光餐旅",
	"17": "金融保險", "18": "貿易百貨", "19": "綜合", "20": "其他",
	"21": "化學工業", "22": "生技醫療", "23": "油電燃氣", "24": "半導體業",
	"25": "電腦及週邊", "26": "光電業", "27": "通信網路", "28": "電子零組件",
	"29": "電子通路", "30": "資訊服務", "31": "其他電子", "32": "文化創意",
	"33": "農業科技", "34": "電子商務", "35": "綠能環保", "36": "數位雲端",
	"37": "運動休閒", "38": "居家生活", "80": "管理股票", "91": "存託憑證",
}

// IndustryDefault is the category for unmapped industry codes.
const IndustryDefault = "其他"

// IndustryName resolves a two-digit industry code to its category name,
// defaulting to 其他 when unmapped.
func IndustryName(code string) string {
	if name, ok := industryNames[code]; ok {
		return name
	}
	return IndustryDefault
}
