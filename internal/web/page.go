package web

const indexHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>dripfolio</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 760px; color: #222; }
  h1 { font-size: 1.4rem; }
  h2 { font-size: 1.1rem; margin-top: 2rem; }
  table { border-collapse: collapse; width: 100%; }
  th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #ddd; }
  .gain { color: #0a7d32; }
  .loss { color: #b3261e; }
  .muted { color: #888; }
</style>
</head>
<body>
<h1>dripfolio</h1>
<p class="muted">Recurring investment simulator. Runs appear below as they complete.</p>

<h2>Watchlist</h2>
<table id="watchlist">
  <thead><tr><th>Coin</th><th>Price</th></tr></thead>
  <tbody></tbody>
</table>

<h2>Simulation runs</h2>
<table id="runs">
  <thead><tr><th>Time</th><th>Coins</th><th>Monthly</th><th>Periods</th><th>Invested</th><th>Value</th><th>ROI %</th></tr></thead>
  <tbody></tbody>
</table>

<script>
fetch('/api/watchlist').then(r => r.json()).then(items => {
  const body = document.querySelector('#watchlist tbody');
  for (const it of items || []) {
    const row = body.insertRow();
    row.insertCell().textContent = it.coin;
    const price = row.insertCell();
    if (it.available) {
      price.textContent = it.price + ' ' + it.currency;
    } else {
      price.textContent = 'n/a';
      price.className = 'muted';
    }
  }
});

const source = new EventSource('/runs/stream');
source.addEventListener('run', ev => {
  const run = JSON.parse(ev.data);
  const body = document.querySelector('#runs tbody');
  const row = body.insertRow(0);
  row.insertCell().textContent = new Date(run.time).toLocaleString();
  row.insertCell().textContent = (run.coins || []).join(', ');
  row.insertCell().textContent = run.monthly_amount + ' ' + run.currency;
  row.insertCell().textContent = run.periods;
  row.insertCell().textContent = run.total_invested;
  row.insertCell().textContent = run.total_value;
  const roi = row.insertCell();
  roi.textContent = run.roi_percent;
  roi.className = parseFloat(run.roi_percent) >= 0 ? 'gain' : 'loss';
});
</script>
</body>
</html>
`
