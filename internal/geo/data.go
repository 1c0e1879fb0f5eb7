package geo

// Coord is a city reference point in plain degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// BBox is an axis-aligned lat/lon rectangle. Boxes approximate province
// extents and may overlap; they are not administrative polygons.
type BBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether the point lies inside the box, borders included.
func (b BBox) Contains(lat, lon float64) bool {
	return b.LatMin <= lat && lat <= b.LatMax && b.LonMin <= lon && lon <= b.LonMax
}

// SpecialRegion corrects a known misattribution: a small area close to one
// province's centroid that falls administratively inside a neighbor's box.
type SpecialRegion struct {
	Box  BBox
	City string
}

// Admission rectangle for the globally-scoped EMSC feed.
const (
	TurkeyLatMin = 36.0
	TurkeyLatMax = 42.1
	TurkeyLonMin = 26.0
	TurkeyLonMax = 45.0
)

// InTurkey reports whether the point falls inside the admission rectangle.
func InTurkey(lat, lon float64) bool {
	return TurkeyLatMin <= lat && lat <= TurkeyLatMax && TurkeyLonMin <= lon && lon <= TurkeyLonMax
}

// Cities maps each province to its reference coordinates.
var Cities = map[string]Coord{
	"Adana":          {37.0000, 35.3213},
	"Adıyaman":       {37.7648, 38.2786},
	"Afyonkarahisar": {38.7507, 30.5567},
	"Ağrı":           {39.7191, 43.0503},
	"Amasya":         {40.6499, 35.8353},
	"Ankara":         {39.9208, 32.8541},
	"Antalya":        {36.8969, 30.7133},
	"Artvin":         {41.1828, 41.8183},
	"Aydın":          {37.8444, 27.8458},
	"Balıkesir":      {39.6484, 27.8826},
	"Bilecik":        {40.1500, 29.9833},
	"Bingöl":         {38.8854, 40.4983},
	"Bitlis":         {38.4001, 42.1095},
	"Bolu":           {40.7395, 31.6061},
	"Burdur":         {37.7200, 30.2900},
	"Bursa":          {40.1826, 29.0665},
	"Çanakkale":      {40.1553, 26.4142},
	"Çankırı":        {40.6013, 33.6134},
	"Çorum":          {40.5506, 34.9556},
	"Denizli":        {37.7765, 29.0864},
	"Diyarbakır":     {37.9144, 40.2306},
	"Edirne":         {41.6771, 26.5557},
	"Elazığ":         {38.6810, 39.2264},
	"Erzincan":       {39.7500, 39.5000},
	"Erzurum":        {39.9043, 41.2679},
	"Eskişehir":      {39.7767, 30.5206},
	"Gaziantep":      {37.0662, 37.3833},
	"Giresun":        {40.9128, 38.3895},
	"Gümüşhane":      {40.4386, 39.5086},
	"Hakkari":        {37.5744, 43.7408},
	"Hatay":          {36.2021, 36.1608},
	"Isparta":        {37.7648, 30.5566},
	"Mersin":         {36.8000, 34.6333},
	"İstanbul":       {41.0082, 28.9784},
	"İzmir":          {38.4192, 27.1287},
	"Kars":           {40.6167, 43.0975},
	"Kastamonu":      {41.3887, 33.7827},
	"Kayseri":        {38.7312, 35.4787},
	"Kırklareli":     {41.7333, 27.2167},
	"Kırşehir":       {39.1425, 34.1709},
	"Kocaeli":        {40.8533, 29.8815},
	"Konya":          {37.8667, 32.4833},
	"Kütahya":        {39.4167, 29.9833},
	"Malatya":        {38.3552, 38.3095},
	"Manisa":         {38.6191, 27.4289},
	"Kahramanmaraş":  {37.5736, 36.9371},
	"Mardin":         {37.3212, 40.7245},
	"Muğla":          {37.2153, 28.3636},
	"Muş":            {38.7325, 41.4916},
	"Nevşehir":       {38.6939, 34.6857},
	"Niğde":          {37.9667, 34.6833},
	"Ordu":           {40.9839, 37.8764},
	"Rize":           {41.0201, 40.5234},
	"Sakarya":        {40.7569, 30.3781},
	"Samsun":         {41.2928, 36.3313},
	"Siirt":          {37.9333, 41.9500},
	"Sinop":          {42.0231, 35.1531},
	"Sivas":          {39.7477, 37.0179},
	"Tekirdağ":       {40.9833, 27.5167},
	"Tokat":          {40.3167, 36.5500},
	"Trabzon":        {41.0015, 39.7178},
	"Tunceli":        {39.1079, 39.5401},
	"Şanlıurfa":      {37.1591, 38.7969},
	"Uşak":           {38.6823, 29.4082},
	"Van":            {38.4891, 43.4089},
	"Yozgat":         {39.8181, 34.8147},
	"Zonguldak":      {41.4564, 31.7987},
	"Aksaray":        {38.3687, 34.0370},
	"Bayburt":        {40.2552, 40.2249},
	"Karaman":        {37.1759, 33.2287},
	"Kırıkkale":      {39.8468, 33.5153},
	"Batman":         {37.8812, 41.1351},
	"Şırnak":         {37.5164, 42.4611},
	"Bartın":         {41.6344, 32.3375},
	"Ardahan":        {41.1105, 42.7022},
	"Iğdır":          {39.9167, 44.0333},
	"Yalova":         {40.6500, 29.2667},
	"Karabük":        {41.2061, 32.6204},
	"Kilis":          {36.7184, 37.1212},
	"Osmaniye":       {37.0742, 36.2478},
	"Düzce":          {40.8438, 31.1565},
}

// ProvinceBounds maps provinces to their approximate bounding boxes.
// Hakkari has no box; events there resolve through the fallback scan.
var ProvinceBounds = map[string]BBox{
	"Kütahya":        {38.9, 39.8, 28.9, 30.3},
	"Uşak":           {38.3, 38.9, 28.8, 29.9},
	"Afyonkarahisar": {38.2, 39.2, 29.9, 31.5},
	"Manisa":         {38.2, 39.3, 27.2, 28.9},
	"Denizli":        {37.4, 38.4, 28.6, 29.9},
	"Balıkesir":      {39.1, 40.3, 26.7, 28.9},
	"Bursa":          {39.8, 40.4, 28.2, 30.0},
	"Bilecik":        {39.8, 40.4, 29.7, 30.6},
	"Eskişehir":      {39.1, 40.1, 30.1, 31.7},
	"İzmir":          {37.8, 39.1, 26.2, 28.2},
	"Aydın":          {37.3, 38.2, 27.2, 28.9},
	"Muğla":          {36.3, 37.6, 27.2, 29.4},
	"Burdur":         {36.9, 37.8, 29.4, 30.9},
	"Isparta":        {37.4, 38.5, 30.0, 31.5},
	"Antalya":        {36.0, 37.6, 29.3, 32.5},
	"Konya":          {36.5, 39.5, 31.0, 34.5},
	"Karaman":        {36.7, 37.7, 32.3, 34.1},
	"Mersin":         {36.0, 37.5, 32.5, 35.0},
	"Adana":          {36.5, 38.2, 34.5, 36.5},
	"Niğde":          {37.2, 38.4, 34.0, 35.5},
	"Aksaray":        {38.0, 39.0, 33.0, 34.5},
	"Nevşehir":       {38.4, 39.2, 34.0, 35.2},
	"Kırşehir":       {38.8, 39.8, 33.5, 34.8},
	"Kayseri":        {37.7, 39.2, 35.0, 36.8},
	"Yozgat":         {38.8, 40.2, 34.0, 36.2},
	"Tokat":          {39.8, 40.8, 35.5, 37.5},
	"Sivas":          {38.5, 40.6, 36.0, 39.0},
	"Kahramanmaraş":  {37.2, 38.8, 36.0, 37.6},
	"Osmaniye":       {36.9, 37.8, 35.7, 36.5},
	"Gaziantep":      {36.6, 37.5, 36.5, 38.0},
	"Kilis":          {36.5, 37.0, 36.5, 37.5},
	"Hatay":          {35.8, 37.0, 35.8, 36.7},
	"Adıyaman":       {37.5, 38.5, 37.5, 39.0},
	"Şanlıurfa":      {36.7, 38.0, 37.8, 40.2},
	"Diyarbakır":     {37.3, 38.7, 39.5, 41.5},
	"Mardin":         {36.9, 37.6, 40.0, 41.8},
	"Batman":         {37.5, 38.3, 40.5, 41.5},
	"Siirt":          {37.5, 38.5, 41.5, 42.6},
	"Şırnak":         {37.0, 37.8, 42.0, 43.5},
	"Van":            {37.5, 39.2, 42.5, 44.5},
	"Bitlis":         {38.0, 39.0, 41.5, 43.0},
	"Muş":            {38.5, 39.5, 41.0, 42.0},
	"Bingöl":         {38.5, 39.5, 40.0, 41.5},
	"Elazığ":         {38.3, 39.5, 38.3, 40.3},
	"Malatya":        {37.8, 39.0, 37.0, 39.0},
	"Tunceli":        {38.8, 39.6, 39.0, 40.5},
	"Erzincan":       {39.0, 40.3, 38.5, 40.5},
	"Erzurum":        {39.5, 41.0, 40.0, 42.5},
	"Ağrı":           {39.0, 40.0, 42.5, 44.5},
	"Iğdır":          {39.5, 40.2, 43.5, 44.8},
	"Kars":           {40.0, 41.4, 42.0, 44.0},
	"Ardahan":        {40.8, 41.6, 42.0, 43.3},
	"Artvin":         {40.8, 41.5, 41.0, 42.5},
	"Rize":           {40.5, 41.2, 40.0, 41.5},
	"Trabzon":        {40.5, 41.2, 39.0, 40.5},
	"Giresun":        {40.0, 41.0, 37.8, 39.5},
	"Ordu":           {40.5, 41.2, 36.5, 38.2},
	"Gümüşhane":      {40.0, 40.7, 38.5, 40.0},
	"Bayburt":        {40.0, 40.8, 39.6, 40.5},
	"Samsun":         {40.8, 41.8, 35.0, 37.0},
	"Amasya":         {40.3, 41.0, 35.0, 36.5},
	"Çorum":          {40.0, 41.3, 34.0, 35.5},
	"Kastamonu":      {41.0, 42.0, 32.5, 34.5},
	"Sinop":          {41.5, 42.2, 34.5, 35.5},
	"Çankırı":        {40.3, 41.2, 32.5, 34.0},
	"Karabük":        {40.8, 41.5, 32.0, 33.0},
	"Bartın":         {41.3, 41.9, 32.0, 33.0},
	"Zonguldak":      {41.0, 41.6, 31.0, 32.2},
	"Düzce":          {40.6, 41.1, 30.8, 31.8},
	"Bolu":           {40.3, 41.1, 30.5, 32.0},
	"Sakarya":        {40.3, 41.1, 29.8, 31.0},
	"Kocaeli":        {40.5, 41.2, 29.3, 30.3},
	"Yalova":         {40.5, 40.8, 28.7, 29.5},
	"İstanbul":       {40.7, 41.7, 27.9, 29.9},
	"Tekirdağ":       {40.5, 41.5, 26.5, 28.2},
	"Kırklareli":     {41.0, 42.0, 26.2, 28.0},
	"Edirne":         {40.5, 41.8, 26.0, 27.0},
	"Çanakkale":      {39.5, 40.7, 25.8, 27.5},
	"Ankara":         {39.0, 40.5, 31.5, 33.5},
	"Kırıkkale":      {39.3, 40.2, 33.3, 34.2},
}

// SpecialRegions is checked in order before the general province match.
// The Simav area sits closer to the Kütahya centroid but falls inside
// neighboring boxes.
var SpecialRegions = []SpecialRegion{
	{Box: BBox{38.9, 39.3, 28.7, 29.1}, City: "Kütahya"},
}
